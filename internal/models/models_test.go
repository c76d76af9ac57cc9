package models

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFeatureVectorDefaults(t *testing.T) {
	fv := FeatureVector{FeatureGoalsScoredDiff: 1.5}

	if got := fv.Value(FeatureGoalsScoredDiff); got != 1.5 {
		t.Errorf("Value = %v, want 1.5", got)
	}
	if got := fv.Value("unknown_feature"); got != 0.0 {
		t.Errorf("absent key should resolve to 0.0, got %v", got)
	}
}

func TestFeatureVectorScaling(t *testing.T) {
	fv := FeatureVector{
		FeaturePowerPlayDiff:   10.0,
		FeaturePenaltyKillDiff: -5.0,
		FeatureCorsiDiff:       -5.0,
	}

	if got := fv.Scaled(FeaturePowerPlayDiff); got != 1.0 {
		t.Errorf("power play should scale /10, got %v", got)
	}
	if got := fv.Scaled(FeaturePenaltyKillDiff); got != -0.5 {
		t.Errorf("penalty kill should scale /10, got %v", got)
	}
	if got := fv.Scaled(FeatureCorsiDiff); got != -5.0 {
		t.Errorf("corsi should not scale, got %v", got)
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		raw     string
		want    Label
		wantErr bool
	}{
		{"away", LabelAway, false},
		{"home", LabelHome, false},
		{"draw", "", true},
		{"", "", true},
		{"AWAY", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLabel(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidOutcomeLabel) {
				t.Errorf("ParseLabel(%q) error = %v, want ErrInvalidOutcomeLabel", tt.raw, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLabel(%q) = %v, %v, want %v", tt.raw, got, err, tt.want)
		}
	}
}

func TestNormalizePair(t *testing.T) {
	tests := []struct {
		name         string
		pAway, pHome float64
		wantAway     float64
	}{
		{"already normalized", 0.6, 0.4, 0.6},
		{"needs scaling", 0.6, 0.6, 0.5},
		{"degenerate zero", 0, 0, 0.5},
		{"degenerate negative", -0.2, -0.3, 0.5},
		{"nan input", math.NaN(), 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAway, gotHome := NormalizePair(tt.pAway, tt.pHome)
			if math.Abs(gotAway-tt.wantAway) > 1e-9 {
				t.Errorf("pAway = %v, want %v", gotAway, tt.wantAway)
			}
			if math.Abs(gotAway+gotHome-1.0) > 1e-9 {
				t.Errorf("pair should sum to 1, got %v", gotAway+gotHome)
			}
		})
	}
}

func TestDifferentialsDirection(t *testing.T) {
	away := DefaultTeamMetrics("a", VenueAway)
	home := DefaultTeamMetrics("h", VenueHome)
	away.GoalsFor = 4.0
	home.GoalsFor = 2.0
	away.GoalsAgainst = 2.2
	home.GoalsAgainst = 3.1

	fv := Differentials(away, home)
	if got := fv.Value(FeatureGoalsScoredDiff); got != 2.0 {
		t.Errorf("gs_diff = %v, want away-minus-home 2.0", got)
	}
	// Goals against is inverted: the away side concedes fewer here, so the
	// differential must come out positive (favoring away).
	if got := fv.Value(FeatureGoalsAgainstDiff); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("ga_diff = %v, want home-minus-away 0.9", got)
	}
}

func TestDecimalOdds(t *testing.T) {
	if got := DecimalOdds(0.5); !got.Equal(decimal.NewFromInt(2)) {
		t.Errorf("DecimalOdds(0.5) = %s, want 2", got)
	}
	if !DecimalOdds(0).IsZero() {
		t.Error("DecimalOdds(0) should be zero")
	}
}

func TestAmericanOdds(t *testing.T) {
	if got := AmericanOdds(0.6); !got.Equal(decimal.NewFromInt(-150)) {
		t.Errorf("AmericanOdds(0.6) = %s, want -150", got)
	}
	if got := AmericanOdds(0.4); !got.Equal(decimal.NewFromInt(150)) {
		t.Errorf("AmericanOdds(0.4) = %s, want 150", got)
	}
}

func TestImpliedProbabilityRoundTrip(t *testing.T) {
	p := 0.25
	got := ImpliedProbability(DecimalOdds(p))
	if math.Abs(got-p) > 0.001 {
		t.Errorf("round trip = %v, want ~%v", got, p)
	}
}

func TestPredictionResultFavorite(t *testing.T) {
	r := &PredictionResult{PAway: 0.7, PHome: 0.3}
	if r.Favorite() != LabelAway {
		t.Error("away should be the favorite")
	}
	if math.Abs(r.Confidence()-0.4) > 1e-9 {
		t.Errorf("Confidence = %v, want 0.4", r.Confidence())
	}
}
