package rpc_test

import (
	"encoding/json"
	"testing"

	"zetatrack/internal/modules/probe/adapter/out/rpc"
	"zetatrack/internal/modules/probe/domain"
)

func TestDocumentSurvivesWireConversion(t *testing.T) {
	t.Parallel()
	doc := domain.NewDocument(domain.NewElement("body",
		domain.NewElement("span", domain.NewText("Seconds left: "), domain.NewElement("b", domain.NewText("4"))),
		domain.NewElement("span", domain.NewText("Score: 17")),
	))
	payload, err := json.Marshal(rpc.DecodeRequest{Root: rpc.FromDocument(doc)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := rpc.DecodeRequest{}
	if err := json.Unmarshal(payload, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	back := rpc.ToDocument(req.Root)
	if back.Text() != doc.Text() {
		t.Fatalf("text mismatch: %q vs %q", back.Text(), doc.Text())
	}
	signals := domain.DefaultLayout().Decode(back)
	if signals.SecondsLeft != 4 || signals.Score != 17 {
		t.Fatalf("unexpected signals: %+v", signals)
	}
	if !rpc.ToDocument(nil).Empty() {
		t.Fatalf("nil root must decode to an empty document")
	}
}
