package goCred

import (
	"sync"
	"testing"
)

func TestBreachRegistry(t *testing.T) {
	reg := NewBreachRegistry("hunter2", "letmein")

	if reg.Len() != 2 {
		t.Fatalf("expected 2 seeded entries, got %d", reg.Len())
	}
	if !reg.Contains("hunter2") {
		t.Fatal("expected seeded password to match")
	}
	if !reg.Contains("HUNTER2") {
		t.Fatal("expected case-insensitive match")
	}
	if reg.Contains("hunter3") {
		t.Fatal("expected miss for unregistered password")
	}

	reg.Add("Tr0ub4dor&3")
	if !reg.Contains("tr0ub4dor&3") {
		t.Fatal("expected added password to match case-insensitively")
	}

	// Duplicate adds do not grow the set.
	reg.Add("hunter2")
	if reg.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", reg.Len())
	}
}

func TestBreachRegistryConcurrent(t *testing.T) {
	reg := NewBreachRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			pw := string(rune('a' + n))
			reg.Add(pw)
			for j := 0; j < 100; j++ {
				reg.Contains(pw)
			}
		}(i)
	}
	wg.Wait()

	if reg.Len() != 8 {
		t.Fatalf("expected 8 entries, got %d", reg.Len())
	}
}

func TestEngineRegisterBreach(t *testing.T) {
	engine := newTestEngine(t)

	engine.RegisterBreach("CorrectHorse9!", "BatteryStaple7$")

	metrics, err := engine.Analyze("BatteryStaple7$", "admin")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if !metrics.Compromised {
		t.Fatal("expected registered password to be flagged")
	}
}
