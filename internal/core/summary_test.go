package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestReportNet(t *testing.T) {
	var empty Report
	if !empty.Net().IsZero() {
		t.Fatalf("empty report net = %s, want 0", empty.Net())
	}

	r := Report{Income: decimal.NewFromInt(200), Expense: decimal.NewFromInt(80)}
	if !r.Net().Equal(decimal.NewFromInt(120)) {
		t.Fatalf("net = %s, want 120", r.Net())
	}
}

func TestReportDrift(t *testing.T) {
	r := Report{DaysWorked: 5, AttendanceRows: 5}
	if !r.Consistent() {
		t.Fatalf("expected consistent report")
	}
	r.DaysWorked = 7
	if r.Consistent() || r.CounterDrift() != 2 {
		t.Fatalf("drift = %d, want 2", r.CounterDrift())
	}
}

func TestBalance(t *testing.T) {
	c := Client{Name: "Ali", DailyRate: decimal.NewFromInt(50), DaysWorked: 4}
	totals := PaymentTotals{Payments: decimal.NewFromInt(100), Advances: decimal.NewFromInt(30)}
	if got := Balance(c, totals); !got.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("balance = %s, want 70", got)
	}
}
