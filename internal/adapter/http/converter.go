package http

import (
	"strings"
	"time"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// ToDomainRequest converts a SearchRankingsRequest to a domain.RankingRequest.
// Omitted flexDays and limit take their defaults here, where omitted and
// explicit zero are still distinguishable. An explicit flexDays of zero means
// the target date only.
func ToDomainRequest(req *SearchRankingsRequest) domain.RankingRequest {
	domainReq := domain.RankingRequest{
		Origin:           strings.ToUpper(req.Origin),
		DestinationGroup: strings.ToLower(req.DestinationGroup),
		TargetDate:       req.TargetDate,
		ExcludedDates:    req.ExcludedDates,
		FlexDays:         domain.DefaultFlexDays,
		Limit:            domain.DefaultLimit,
	}
	if req.FlexDays != nil {
		domainReq.FlexDays = *req.FlexDays
	}
	if req.Limit != nil {
		domainReq.Limit = *req.Limit
	}
	return domainReq
}

// ToRankingResponseDTO converts a domain RankingBundle to a RankingResponseDTO.
func ToRankingResponseDTO(bundle *domain.RankingBundle) *RankingResponseDTO {
	if bundle == nil {
		return nil
	}

	dto := &RankingResponseDTO{
		SearchCriteria: SearchCriteriaDTO{
			Origin:           bundle.Request.Origin,
			DestinationGroup: bundle.Request.DestinationGroup,
			TargetDate:       bundle.Request.TargetDate,
			FlexDays:         bundle.Request.FlexDays,
			ExcludedDates:    bundle.Request.ExcludedDates,
			Limit:            bundle.Request.Limit,
		},
		Metadata: MetadataDTO{
			CombinationsPlanned:   bundle.Metadata.CombinationsPlanned,
			CombinationsSucceeded: bundle.Metadata.CombinationsSucceeded,
			CombinationsFailed:    bundle.Metadata.CombinationsFailed,
			OffersSeen:            bundle.Metadata.OffersSeen,
			OffersRejected:        bundle.Metadata.OffersRejected,
			RankingTimeMs:         bundle.Metadata.ElapsedMs,
			GeneratedAt:           bundle.Metadata.GeneratedAt.Format(time.RFC3339),
		},
		Alternatives:  make([]OptionDTO, len(bundle.Alternatives)),
		FlexibleDates: make([]FlexDateDTO, len(bundle.FlexibleDates)),
		PriceStats: PriceStatsDTO{
			Min:    bundle.Stats.Min,
			Max:    bundle.Stats.Max,
			Mean:   bundle.Stats.Mean,
			Median: bundle.Stats.Median,
			StdDev: bundle.Stats.StdDev,
			Count:  bundle.Stats.Count,
		},
	}

	if bundle.Primary != nil {
		primary := ToOptionDTO(bundle.Primary)
		dto.Primary = &primary
	}

	for i := range bundle.Alternatives {
		dto.Alternatives[i] = ToOptionDTO(&bundle.Alternatives[i])
	}

	for i, flex := range bundle.FlexibleDates {
		dto.FlexibleDates[i] = FlexDateDTO{
			Date:   flex.Date,
			Option: ToOptionDTO(&bundle.FlexibleDates[i].Option),
		}
	}

	for _, warning := range bundle.Warnings {
		dto.Warnings = append(dto.Warnings, WarningDTO{
			Airport: warning.Airport,
			Date:    warning.Date,
			Reason:  warning.Reason,
		})
	}

	if bundle.Substitution != nil {
		dto.Substitution = &SubstitutionDTO{
			RequestedDate: bundle.Substitution.RequestedDate,
			ActualDate:    bundle.Substitution.ActualDate,
			Reason:        bundle.Substitution.Reason,
		}
	}

	return dto
}
