package model

import "testing"

func TestExtractPlainText_Email(t *testing.T) {
	got := ExtractPlainText(Email{Subject: "Launch day", Body: "We ship today."})
	want := "Launch day\n\nWe ship today."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractPlainText_Thread(t *testing.T) {
	got := ExtractPlainText(Thread{Tweets: []string{"First post.", "Second post."}})
	want := "First post. Second post."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractPlainText_SingleText(t *testing.T) {
	got := ExtractPlainText(SingleText{Text: "Short update."})
	if got != "Short update." {
		t.Errorf("expected %q, got %q", "Short update.", got)
	}

	got = ExtractPlainText(SingleText{
		Text:     "Short update.",
		Hashtags: []string{"#launch", "#dev"},
	})
	want := "Short update. #launch #dev"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractPlainText_TitledBody(t *testing.T) {
	got := ExtractPlainText(TitledBody{Title: "Why we rebuilt", Body: "It was time."})
	want := "Why we rebuilt\n\nIt was time."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractPlainText_TitledBodyStripsHTML(t *testing.T) {
	got := ExtractPlainText(TitledBody{
		Title: "Post",
		Body:  "<p>Visible <strong>text</strong></p><script>alert(1)</script>",
	})
	want := "Post\n\nVisible text"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractPlainText_PlainProseWithAngleBracket(t *testing.T) {
	// A bare comparison must not be treated as markup
	body := "Latency < 5ms matters more than features."
	got := ExtractPlainText(TitledBody{Title: "Speed", Body: body})
	want := "Speed\n\n" + body
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractPlainText_Nil(t *testing.T) {
	if got := ExtractPlainText(nil); got != "" {
		t.Errorf("expected empty text for nil content, got %q", got)
	}
}
