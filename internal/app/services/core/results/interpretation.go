package results

import (
	"strings"
	"time"

	"labcore-service/internal/app/models"
)

// criticalValueWatchList holds the organisms and resistance phenotypes whose
// detection must be flagged for urgent clinician notification. Matching is a
// case-insensitive substring test against target and marker names.
var criticalValueWatchList = []string{
	"MRSA",
	"VRE",
	"CRE",
	"Carbapenem-resistant",
	"ESBL",
	"KPC",
	"NDM",
	"Clostridioides difficile",
}

// FlagParameters recomputes the low/high/normal flag on every conventional
// parameter that carries both a numeric value and a reference range.
// Parameters without either are left unflagged.
func FlagParameters(parameters []models.ResultParameter) {
	for i := range parameters {
		p := &parameters[i]
		if p.Value == nil || p.ReferenceRange == nil {
			p.Flag = ""
			continue
		}
		switch {
		case *p.Value < p.ReferenceRange.Min:
			p.Flag = models.ParameterFlagLow
		case *p.Value > p.ReferenceRange.Max:
			p.Flag = models.ParameterFlagHigh
		default:
			p.Flag = models.ParameterFlagNormal
		}
	}
}

// NormalizeTargets fills in the per-target interpretation for targets the
// operator submitted without one, deriving it from the detection flag.
func NormalizeTargets(targets []models.TargetDetection) {
	for i := range targets {
		if targets[i].Interpretation != "" {
			continue
		}
		if targets[i].Detected {
			targets[i].Interpretation = models.TargetInterpretationDetected
		} else {
			targets[i].Interpretation = models.TargetInterpretationNotDetected
		}
	}
}

// ComputeOverallResult derives the panel-level call from the per-target
// interpretations. Precedence is fixed: any invalid target invalidates the
// run; a mix of detected and undetected targets is partially positive; all
// detected is positive; any indeterminate target (with nothing detected) is
// indeterminate; otherwise negative.
func ComputeOverallResult(targets []models.TargetDetection) models.OverallResult {
	if len(targets) == 0 {
		return models.OverallResultNegative
	}

	anyInvalid := false
	anyIndeterminate := false
	detected := 0
	undetected := 0
	for _, t := range targets {
		switch t.Interpretation {
		case models.TargetInterpretationInvalid:
			anyInvalid = true
		case models.TargetInterpretationIndeterminate:
			anyIndeterminate = true
		case models.TargetInterpretationDetected:
			detected++
		default:
			undetected++
		}
	}

	switch {
	case anyInvalid:
		return models.OverallResultInvalid
	case detected > 0 && undetected > 0:
		return models.OverallResultPartiallyPositive
	case detected > 0 && undetected == 0 && !anyIndeterminate:
		return models.OverallResultPositive
	case anyIndeterminate:
		return models.OverallResultIndeterminate
	default:
		return models.OverallResultNegative
	}
}

// DetectedPathogens lists the names of targets that came back detected, in
// submission order.
func DetectedPathogens(targets []models.TargetDetection) []string {
	var names []string
	for _, t := range targets {
		if t.Detected {
			names = append(names, t.TargetName)
		}
	}
	return names
}

// DetectedResistanceMarkers lists the names of resistance markers that came
// back detected, in submission order.
func DetectedResistanceMarkers(markers []models.ResistanceMarker) []string {
	var names []string
	for _, m := range markers {
		if m.Detected {
			names = append(names, m.MarkerName)
		}
	}
	return names
}

// DetectCriticalValues flags every detected target or resistance marker whose
// name matches the watch list. Flags only mark the need for notification;
// nothing here delivers one.
func DetectCriticalValues(targets []models.TargetDetection, markers []models.ResistanceMarker, now time.Time) []models.CriticalValue {
	var critical []models.CriticalValue
	for _, t := range targets {
		if t.Detected && matchesWatchList(t.TargetName) {
			critical = append(critical, models.CriticalValue{
				TargetName:           t.TargetName,
				FlaggedAt:            now,
				RequiresNotification: true,
			})
		}
	}
	for _, m := range markers {
		if m.Detected && matchesWatchList(m.MarkerName) {
			critical = append(critical, models.CriticalValue{
				TargetName:           m.MarkerName,
				FlaggedAt:            now,
				RequiresNotification: true,
			})
		}
	}
	return critical
}

func matchesWatchList(name string) bool {
	lowered := strings.ToLower(name)
	for _, watched := range criticalValueWatchList {
		if strings.Contains(lowered, strings.ToLower(watched)) {
			return true
		}
	}
	return false
}
