package patch

import (
	"testing"

	"github.com/vulcandth/gb-save-patcher/pkg/save"
	"github.com/vulcandth/gb-save-patcher/pkg/symdb"
)

type loggingPatch struct {
	stubPatch
}

func (p loggingPatch) ApplyWithLog(b *save.Binary, syms *symdb.DB, sink Sink) error {
	Infof(sink, p.meta.ID, "applying %s", p.meta.ID)
	return p.Apply(b, syms)
}

func TestRecorderKeepsEntriesInOrder(t *testing.T) {
	var rec Recorder
	Infof(&rec, "src", "first")
	Warnf(&rec, "src", "second %d", 2)
	Errorf(&rec, "other", "third")

	entries := rec.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	want := []Entry{
		{Level: Info, Source: "src", Message: "first"},
		{Level: Warning, Source: "src", Message: "second 2"},
		{Level: Error, Source: "other", Message: "third"},
	}
	for i, e := range entries {
		if e != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, e, want[i])
		}
	}
}

func TestApplyPrefersLoggingImplementation(t *testing.T) {
	b := save.New(make([]byte, 4))
	syms := symdb.NewDB()

	var rec Recorder
	p := loggingPatch{stubPatch{meta: Metadata{ID: "logged", Kind: Fix}}}
	if err := Apply(p, b, syms, &rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.Entries()) != 1 || rec.Entries()[0].Message != "applying logged" {
		t.Errorf("entries = %+v", rec.Entries())
	}

	// plain patches apply silently
	rec = Recorder{}
	if err := Apply(stubPatch{meta: Metadata{ID: "plain"}}, b, syms, &rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.Entries()) != 0 {
		t.Errorf("entries = %+v, want none", rec.Entries())
	}
}

func TestLevelString(t *testing.T) {
	if Info.String() != "info" || Warning.String() != "warn" || Error.String() != "error" {
		t.Error("unexpected level strings")
	}
}
