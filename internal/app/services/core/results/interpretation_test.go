package results

import (
	"labcore-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func target(name string, interpretation models.TargetInterpretation) models.TargetDetection {
	return models.TargetDetection{
		TargetName:     name,
		Detected:       interpretation == models.TargetInterpretationDetected,
		Interpretation: interpretation,
	}
}

func TestComputeOverallResult(t *testing.T) {
	cases := []struct {
		name     string
		targets  []models.TargetDetection
		expected models.OverallResult
	}{
		{
			name:     "no targets is negative",
			targets:  nil,
			expected: models.OverallResultNegative,
		},
		{
			name: "all detected is positive",
			targets: []models.TargetDetection{
				target("Influenza A", models.TargetInterpretationDetected),
				target("Influenza B", models.TargetInterpretationDetected),
			},
			expected: models.OverallResultPositive,
		},
		{
			name: "mixed detected and undetected is partially positive",
			targets: []models.TargetDetection{
				target("Influenza A", models.TargetInterpretationDetected),
				target("RSV", models.TargetInterpretationNotDetected),
			},
			expected: models.OverallResultPartiallyPositive,
		},
		{
			name: "any invalid overrides detections",
			targets: []models.TargetDetection{
				target("Influenza A", models.TargetInterpretationDetected),
				target("RSV", models.TargetInterpretationInvalid),
			},
			expected: models.OverallResultInvalid,
		},
		{
			name: "indeterminate without detections is indeterminate",
			targets: []models.TargetDetection{
				target("Influenza A", models.TargetInterpretationNotDetected),
				target("RSV", models.TargetInterpretationIndeterminate),
			},
			expected: models.OverallResultIndeterminate,
		},
		{
			name: "all undetected is negative",
			targets: []models.TargetDetection{
				target("Influenza A", models.TargetInterpretationNotDetected),
				target("RSV", models.TargetInterpretationNotDetected),
			},
			expected: models.OverallResultNegative,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeOverallResult(tc.targets))
		})
	}
}

func TestNormalizeTargets(t *testing.T) {
	targets := []models.TargetDetection{
		{TargetName: "Influenza A", Detected: true},
		{TargetName: "RSV", Detected: false},
		{TargetName: "SARS-CoV-2", Detected: false, Interpretation: models.TargetInterpretationIndeterminate},
	}

	NormalizeTargets(targets)

	assert.Equal(t, models.TargetInterpretationDetected, targets[0].Interpretation)
	assert.Equal(t, models.TargetInterpretationNotDetected, targets[1].Interpretation)
	assert.Equal(t, models.TargetInterpretationIndeterminate, targets[2].Interpretation, "operator-entered interpretation is kept")
}

func TestFlagParameters(t *testing.T) {
	value := func(v float64) *float64 { return &v }
	rng := &models.ReferenceRange{Min: 10, Max: 20}

	parameters := []models.ResultParameter{
		{Name: "low", Value: value(5), ReferenceRange: rng},
		{Name: "in range", Value: value(15), ReferenceRange: rng},
		{Name: "high", Value: value(25), ReferenceRange: rng},
		{Name: "at min", Value: value(10), ReferenceRange: rng},
		{Name: "at max", Value: value(20), ReferenceRange: rng},
		{Name: "no range", Value: value(5)},
		{Name: "text only", ValueText: "turbid", ReferenceRange: rng},
	}

	FlagParameters(parameters)

	assert.Equal(t, models.ParameterFlagLow, parameters[0].Flag)
	assert.Equal(t, models.ParameterFlagNormal, parameters[1].Flag)
	assert.Equal(t, models.ParameterFlagHigh, parameters[2].Flag)
	assert.Equal(t, models.ParameterFlagNormal, parameters[3].Flag, "boundary values are in range")
	assert.Equal(t, models.ParameterFlagNormal, parameters[4].Flag, "boundary values are in range")
	assert.Empty(t, parameters[5].Flag, "no reference range means no flag")
	assert.Empty(t, parameters[6].Flag, "no numeric value means no flag")
}

func TestDetectCriticalValues(t *testing.T) {
	now := time.Now()

	t.Run("watch list hits on detected targets", func(t *testing.T) {
		targets := []models.TargetDetection{
			{TargetName: "MRSA screen", Detected: true},
			{TargetName: "mrsa confirmation", Detected: true},
			{TargetName: "Clostridioides difficile toxin B", Detected: true},
		}
		critical := DetectCriticalValues(targets, nil, now)
		assert.Len(t, critical, 3, "matching is a case-insensitive substring test")
		for _, cv := range critical {
			assert.True(t, cv.RequiresNotification)
			assert.Equal(t, now, cv.FlaggedAt)
		}
	})

	t.Run("undetected watch list entries are not flagged", func(t *testing.T) {
		targets := []models.TargetDetection{{TargetName: "MRSA screen", Detected: false}}
		assert.Empty(t, DetectCriticalValues(targets, nil, now))
	})

	t.Run("names off the watch list are not flagged", func(t *testing.T) {
		targets := []models.TargetDetection{
			{TargetName: "Influenza A", Detected: true},
			{TargetName: "RSV", Detected: true},
		}
		assert.Empty(t, DetectCriticalValues(targets, nil, now))
	})

	t.Run("resistance markers are watched too", func(t *testing.T) {
		markers := []models.ResistanceMarker{
			{MarkerName: "KPC", Gene: "blaKPC", Detected: true},
			{MarkerName: "mecA", Detected: true},
		}
		critical := DetectCriticalValues(nil, markers, now)
		assert.Len(t, critical, 1)
		assert.Equal(t, "KPC", critical[0].TargetName)
	})
}

func TestDetectedLists(t *testing.T) {
	targets := []models.TargetDetection{
		{TargetName: "Influenza A", Detected: true},
		{TargetName: "RSV", Detected: false},
		{TargetName: "SARS-CoV-2", Detected: true},
	}
	markers := []models.ResistanceMarker{
		{MarkerName: "mecA", Detected: true},
		{MarkerName: "vanA", Detected: false},
	}

	assert.Equal(t, []string{"Influenza A", "SARS-CoV-2"}, DetectedPathogens(targets))
	assert.Equal(t, []string{"mecA"}, DetectedResistanceMarkers(markers))
}
