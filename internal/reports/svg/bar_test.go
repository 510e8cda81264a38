package svg

import (
	"strings"
	"testing"
)

func TestBarsProducesSVG(t *testing.T) {
	output, err := Bars(420, 220, []float64{500, 600}, []string{"SUP001", "SUP002"}, BarOpts{
		Title:       "Order Costs",
		Description: "Total order cost per supplier",
		SeriesLabel: "Total Cost",
	})
	if err != nil {
		t.Fatalf("bars renderer error: %v", err)
	}
	if !strings.HasPrefix(output, "<svg") {
		t.Fatalf("expected svg output, got %s", output)
	}
	if !strings.Contains(output, "<rect") {
		t.Fatalf("expected rect bars in svg")
	}
	if !strings.Contains(output, "SUP001") {
		t.Fatalf("expected supplier label in svg")
	}
	if !strings.Contains(output, "Total Cost") {
		t.Fatalf("expected legend label")
	}
}

func TestBarsRejectsMismatchedLabels(t *testing.T) {
	if _, err := Bars(0, 0, []float64{1, 2}, []string{"one"}, BarOpts{}); err == nil {
		t.Fatalf("expected error for mismatched labels")
	}
}

func TestBarsRejectsEmptySeries(t *testing.T) {
	if _, err := Bars(0, 0, nil, nil, BarOpts{}); err == nil {
		t.Fatalf("expected error for empty series")
	}
}
