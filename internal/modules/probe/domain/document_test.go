package domain_test

import (
	"regexp"
	"testing"

	"zetatrack/internal/modules/probe/domain"
)

func gamePage(timer, score string) domain.Document {
	root := domain.NewElement("body",
		domain.NewElement("h1", domain.NewText("Arithmetic Game")),
		domain.NewElement("div",
			domain.NewElement("span", domain.NewText("Seconds left: "), domain.NewElement("b", domain.NewText(timer))),
			domain.NewElement("span", domain.NewText("Score: "+score)),
		),
	)
	return domain.NewDocument(root)
}

func TestFindByTextReturnsInnermostMatchingElement(t *testing.T) {
	t.Parallel()
	doc := gamePage("37", "12")
	el, ok := doc.FindByText(regexp.MustCompile(`Seconds left:\s*(\d+)`))
	if !ok {
		t.Fatalf("expected timer element")
	}
	if el.Tag != "span" {
		t.Fatalf("expected span, got %s", el.Tag)
	}
	if el.Text() != "Seconds left: 37" {
		t.Fatalf("unexpected text %q", el.Text())
	}
}

func TestFindByTextPrefersFirstMatchInDocumentOrder(t *testing.T) {
	t.Parallel()
	root := domain.NewElement("body",
		domain.NewElement("header", domain.NewText("Zetamac")),
		domain.NewElement("section",
			domain.NewElement("div", domain.NewElement("p", domain.NewText("Score: 3"))),
		),
		domain.NewElement("footer", domain.NewText("Score: 99")),
	)
	el, ok := domain.NewDocument(root).FindByText(regexp.MustCompile(`Score:\s*(\d+)`))
	if !ok {
		t.Fatalf("expected score element")
	}
	if el.Tag != "p" || el.Text() != "Score: 3" {
		t.Fatalf("expected innermost first match, got <%s> %q", el.Tag, el.Text())
	}
}

func TestFindByTextToleratesMissingContent(t *testing.T) {
	t.Parallel()
	empty := domain.NewDocument(domain.NewElement("body"))
	if _, ok := empty.FindByText(regexp.MustCompile(`Score:`)); ok {
		t.Fatalf("empty document must not match")
	}
	if _, ok := (domain.Document{}).FindByText(regexp.MustCompile(`Score:`)); ok {
		t.Fatalf("nil root must not match")
	}
	if !empty.Empty() {
		t.Fatalf("body without children is empty")
	}
}

func TestDecodeReadsTimerScoreAndEndPhrase(t *testing.T) {
	t.Parallel()
	layout := domain.DefaultLayout()

	running := layout.Decode(gamePage("5", "3"))
	if !running.HasTimer || running.SecondsLeft != 5 {
		t.Fatalf("unexpected timer: %+v", running)
	}
	if !running.HasScore || running.Score != 3 {
		t.Fatalf("unexpected score: %+v", running)
	}
	if running.Ended {
		t.Fatalf("running page must not be ended")
	}

	over := domain.NewDocument(domain.NewElement("body",
		domain.NewElement("p", domain.NewText("Time's up! Score: 42")),
	))
	done := layout.Decode(over)
	if !done.Ended || done.EndPhrase != "Time's up!" {
		t.Fatalf("expected end phrase, got %+v", done)
	}
	if done.HasTimer {
		t.Fatalf("timer must be absent")
	}
	if done.Score != 42 {
		t.Fatalf("expected score 42, got %d", done.Score)
	}
}

func TestDecodeEndPhraseIsCaseSensitive(t *testing.T) {
	t.Parallel()
	doc := domain.NewDocument(domain.NewElement("body", domain.NewText("game over")))
	if domain.DefaultLayout().Decode(doc).Ended {
		t.Fatalf("lowercase phrase must not match")
	}
}

func TestNewLayoutRequiresCaptureGroup(t *testing.T) {
	t.Parallel()
	if _, err := domain.NewLayout(`Seconds left:`, domain.DefaultScorePattern, nil); err == nil {
		t.Fatalf("expected capture group error")
	}
	if _, err := domain.NewLayout(`(`, domain.DefaultScorePattern, nil); err == nil {
		t.Fatalf("expected compile error")
	}
}
