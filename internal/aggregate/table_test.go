package aggregate

import (
	"testing"

	"github.com/tinytelemetry/urltop/internal/model"
)

func TestTable_Counters(t *testing.T) {
	t.Parallel()
	table := NewTable()
	table.Add(model.Extraction{URL: "/a", Time: 1.0}, true)
	table.Add(model.Extraction{}, false)
	table.Add(model.Extraction{URL: "/b", Time: 2.0}, true)
	table.Add(model.Extraction{}, false)
	table.Add(model.Extraction{URL: "/a", Time: 3.0}, true)

	if got := table.Processed(); got != 5 {
		t.Errorf("Processed = %d, want 5", got)
	}
	if got := table.Parsed(); got != 3 {
		t.Errorf("Parsed = %d, want 3", got)
	}
	if got := table.ParsedShare(); got != 0.6 {
		t.Errorf("ParsedShare = %v, want 0.6", got)
	}
}

func TestTable_FailedRecordsAreNotStored(t *testing.T) {
	t.Parallel()
	table := NewTable()
	table.Add(model.Extraction{}, false)
	table.Add(model.Extraction{}, false)

	if got := len(table.URLs()); got != 0 {
		t.Errorf("URLs = %d entries, want 0", got)
	}
	if got := table.ParsedShare(); got != 0 {
		t.Errorf("ParsedShare = %v, want 0", got)
	}
}

func TestTable_PreservesOrder(t *testing.T) {
	t.Parallel()
	table := NewTable()
	table.Add(model.Extraction{URL: "/b", Time: 1.0}, true)
	table.Add(model.Extraction{URL: "/a", Time: 2.0}, true)
	table.Add(model.Extraction{URL: "/b", Time: 3.0}, true)
	table.Add(model.Extraction{URL: "/c", Time: 4.0}, true)

	urls := table.URLs()
	want := []string{"/b", "/a", "/c"}
	if len(urls) != len(want) {
		t.Fatalf("URLs = %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("URLs[%d] = %q, want %q (first-seen order)", i, urls[i], want[i])
		}
	}

	times := table.Times("/b")
	if len(times) != 2 || times[0] != 1.0 || times[1] != 3.0 {
		t.Errorf("Times(/b) = %v, want [1 3] in input order", times)
	}
}

func TestTable_ParsedShareRounding(t *testing.T) {
	t.Parallel()
	table := NewTable()
	table.Add(model.Extraction{URL: "/a", Time: 1.0}, true)
	table.Add(model.Extraction{}, false)
	table.Add(model.Extraction{}, false)

	// 1/3 rounded to 3 decimal places.
	if got := table.ParsedShare(); got != 0.333 {
		t.Errorf("ParsedShare = %v, want 0.333", got)
	}
}

func TestTable_EmptyShareIsZero(t *testing.T) {
	t.Parallel()
	if got := NewTable().ParsedShare(); got != 0 {
		t.Errorf("ParsedShare = %v, want 0 for empty table", got)
	}
}
