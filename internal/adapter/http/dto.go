package http

import (
	"fmt"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// RankingResponseDTO is the data transfer object for ranking responses.
// It matches the expected API output format with snake_case fields.
type RankingResponseDTO struct {
	SearchCriteria SearchCriteriaDTO `json:"search_criteria"`
	Metadata       MetadataDTO       `json:"metadata"`
	Primary        *OptionDTO        `json:"primary"`
	Alternatives   []OptionDTO       `json:"alternatives"`
	FlexibleDates  []FlexDateDTO     `json:"flexible_dates"`
	PriceStats     PriceStatsDTO     `json:"price_stats"`
	Warnings       []WarningDTO      `json:"warnings,omitempty"`
	Substitution   *SubstitutionDTO  `json:"substitution,omitempty"`
}

// SearchCriteriaDTO echoes the request in the response.
type SearchCriteriaDTO struct {
	Origin           string   `json:"origin"`
	DestinationGroup string   `json:"destination_group"`
	TargetDate       string   `json:"target_date"`
	FlexDays         int      `json:"flex_days"`
	ExcludedDates    []string `json:"excluded_dates,omitempty"`
	Limit            int      `json:"limit"`
}

// MetadataDTO contains metadata about the ranking run.
type MetadataDTO struct {
	CombinationsPlanned   int    `json:"combinations_planned"`
	CombinationsSucceeded int    `json:"combinations_succeeded"`
	CombinationsFailed    int    `json:"combinations_failed"`
	OffersSeen            int    `json:"offers_seen"`
	OffersRejected        int    `json:"offers_rejected"`
	RankingTimeMs         int64  `json:"ranking_time_ms"`
	GeneratedAt           string `json:"generated_at"`
}

// OptionDTO is the data transfer object for a scored flight option.
type OptionDTO struct {
	ID             string       `json:"id"`
	Source         string       `json:"source"`
	Origin         string       `json:"origin"`
	Destination    string       `json:"destination"`
	Departure      string       `json:"departure"`
	Arrival        string       `json:"arrival"`
	Segments       []SegmentDTO `json:"segments"`
	Duration       DurationDTO  `json:"duration"`
	Stops          int          `json:"stops"`
	Price          PriceDTO     `json:"price"`
	LayoverScore   float64      `json:"layover_score"`
	Deal           DealDTO      `json:"deal"`
	CompositeScore float64      `json:"composite_score"`
	Rank           int          `json:"rank,omitempty"`
	BookingURL     string       `json:"booking_url,omitempty"`
}

// SegmentDTO represents one leg of a journey.
type SegmentDTO struct {
	Carrier        string `json:"carrier"`
	CarrierName    string `json:"carrier_name,omitempty"`
	FlightNumber   string `json:"flight_number"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Departure      string `json:"departure"`
	Arrival        string `json:"arrival"`
	LayoverMinutes *int   `json:"layover_minutes,omitempty"`
}

// DurationDTO represents total travel time.
type DurationDTO struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

// PriceDTO represents price information.
type PriceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// DealDTO represents deal significance for an option.
type DealDTO struct {
	Known   bool    `json:"known"`
	ZScore  float64 `json:"z_score,omitempty"`
	IsDeal  bool    `json:"is_deal"`
	Samples int     `json:"samples"`
}

// FlexDateDTO is the best option for one window date.
type FlexDateDTO struct {
	Date   string    `json:"date"`
	Option OptionDTO `json:"option"`
}

// PriceStatsDTO summarizes the primary-date candidate prices.
type PriceStatsDTO struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// WarningDTO reports a failed (airport, date) fetch combination.
type WarningDTO struct {
	Airport string `json:"airport"`
	Date    string `json:"date"`
	Reason  string `json:"reason"`
}

// SubstitutionDTO reports a primary-date substitution.
type SubstitutionDTO struct {
	RequestedDate string `json:"requested_date"`
	ActualDate    string `json:"actual_date"`
	Reason        string `json:"reason"`
}

// formatDuration renders a duration as "5h 20m" or "45m".
func formatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// ToSegmentDTO converts a domain Segment to a SegmentDTO.
func ToSegmentDTO(seg *domain.Segment) SegmentDTO {
	dto := SegmentDTO{
		Carrier:      seg.Carrier,
		CarrierName:  seg.CarrierName,
		FlightNumber: seg.FlightNumber,
		Origin:       seg.Origin,
		Destination:  seg.Destination,
		Departure:    seg.Departure.Format("2006-01-02T15:04:05-07:00"),
		Arrival:      seg.Arrival.Format("2006-01-02T15:04:05-07:00"),
	}
	if seg.LayoverAfter != nil {
		minutes := int(seg.LayoverAfter.Minutes())
		dto.LayoverMinutes = &minutes
	}
	return dto
}

// ToOptionDTO converts a domain ScoredOption to an OptionDTO.
func ToOptionDTO(option *domain.ScoredOption) OptionDTO {
	totalMinutes := int(option.Duration.Minutes())

	dto := OptionDTO{
		ID:          option.ID,
		Source:      option.Source,
		Origin:      option.Origin,
		Destination: option.Destination,
		Departure:   option.Departure.Format("2006-01-02T15:04:05-07:00"),
		Arrival:     option.Arrival.Format("2006-01-02T15:04:05-07:00"),
		Segments:    make([]SegmentDTO, len(option.Segments)),
		Duration: DurationDTO{
			TotalMinutes: totalMinutes,
			Formatted:    formatDuration(totalMinutes),
		},
		Stops: option.Stops,
		Price: PriceDTO{
			Amount:   option.Price,
			Currency: option.Currency,
		},
		LayoverScore: option.LayoverScore,
		Deal: DealDTO{
			Known:   option.DealSignificance.Known,
			ZScore:  option.DealSignificance.ZScore,
			IsDeal:  option.DealSignificance.Deal,
			Samples: option.DealSignificance.Samples,
		},
		CompositeScore: option.CompositeScore,
		Rank:           option.Rank,
		BookingURL:     option.BookingURL,
	}

	for i := range option.Segments {
		dto.Segments[i] = ToSegmentDTO(&option.Segments[i])
	}

	return dto
}
