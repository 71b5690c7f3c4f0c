package sequence

import (
	"context"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/pkg/constvars"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Identifier formats, fixed per kind:
//
//	order      ORD<YYMMDD><3-digit sequence>   e.g. ORD240731042
//	accession  ACC<YYMMDD><3-digit sequence>   e.g. ACC240731007
//	result     RES<YYYYMMDD><4-digit sequence> e.g. RES202407310123
//
// The sequence for each (kind, day) lives in a counter document moved only by
// an atomic increment, so concurrent minting cannot collide.
type kindFormat struct {
	prefix     string
	dateLayout string
	width      int
}

var formats = map[contracts.IdentifierKind]kindFormat{
	contracts.IdentifierKindOrder:     {prefix: "ORD", dateLayout: "060102", width: 3},
	contracts.IdentifierKindAccession: {prefix: "ACC", dateLayout: "060102", width: 3},
	contracts.IdentifierKindResult:    {prefix: "RES", dateLayout: "20060102", width: 4},
}

type sequenceService struct {
	counterRepo contracts.CounterRepository
	Log         *zap.Logger
}

func NewSequenceService(counterRepo contracts.CounterRepository, logger *zap.Logger) contracts.SequenceService {
	return &sequenceService{
		counterRepo: counterRepo,
		Log:         logger,
	}
}

func (s *sequenceService) Next(ctx context.Context, kind contracts.IdentifierKind, date time.Time) (string, error) {
	format := formats[kind]
	dayKey := date.Format(format.dateLayout)

	seq, err := s.counterRepo.IncrementAndGet(ctx, kind, dayKey)
	if err != nil {
		s.Log.Error("sequenceService.Next failed to increment counter",
			zap.String(constvars.LoggingIdentifierKindKey, string(kind)),
			zap.Error(err),
		)
		return "", err
	}

	return FormatIdentifier(kind, dayKey, seq), nil
}

// FormatIdentifier renders a minted sequence value in the kind's identifier
// format.
func FormatIdentifier(kind contracts.IdentifierKind, dayKey string, seq int64) string {
	format := formats[kind]
	suffix := strconv.FormatInt(seq, 10)
	for len(suffix) < format.width {
		suffix = "0" + suffix
	}
	return format.prefix + dayKey + suffix
}

// ParseSuffix extracts the numeric suffix of an existing identifier of the
// given kind. A malformed suffix counts as 0: identifier minting must never
// be blocked by corrupt legacy data.
func ParseSuffix(kind contracts.IdentifierKind, identifier string) int64 {
	format := formats[kind]
	head := len(format.prefix) + len(format.dateLayout)
	if len(identifier) <= head {
		return 0
	}
	value, err := strconv.ParseInt(identifier[head:], 10, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// DayKey returns the date portion used in identifiers of the given kind.
func DayKey(kind contracts.IdentifierKind, date time.Time) string {
	return date.Format(formats[kind].dateLayout)
}

// DayPrefix returns the full identifier prefix for one (kind, day) pair, the
// part shared by every identifier minted that day.
func DayPrefix(kind contracts.IdentifierKind, date time.Time) string {
	format := formats[kind]
	return format.prefix + date.Format(format.dateLayout)
}
