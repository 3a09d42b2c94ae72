package i18n

import (
	"testing"

	"fundledger/internal/domain"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		accept   string
		fallback string
		want     string
	}{
		{name: "russian first", accept: "ru-RU,en;q=0.8", fallback: "en", want: "ru"},
		{name: "english preferred", accept: "en-US,ru;q=0.5", fallback: "ru", want: "en"},
		{name: "quality ordering", accept: "en;q=0.1,ru;q=0.9", fallback: "en", want: "ru"},
		{name: "empty uses fallback", accept: "", fallback: "ru", want: "ru"},
		{name: "garbage uses fallback", accept: "!!", fallback: "ru", want: "ru"},
		{name: "unsupported", accept: "id-ID", fallback: "ru", want: "ru"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.accept, tt.fallback); got != tt.want {
				t.Fatalf("Match(%q, %q) = %q, want %q", tt.accept, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	if got := Translate("ru", domain.MsgProjectNameTaken); got != "Проект с таким именем уже существует!" {
		t.Fatalf("unexpected russian message %q", got)
	}
	if got := Translate("en", domain.MsgProjectNameTaken); got != domain.MsgProjectNameTaken {
		t.Fatalf("unexpected english message %q", got)
	}
	if got := Translate("xx", MsgInternal); got != MsgInternal {
		t.Fatalf("unknown locale should fall back to english, got %q", got)
	}
}

func TestEveryKeyHasTranslation(t *testing.T) {
	for key, text := range russian {
		if text == "" {
			t.Fatalf("empty translation for %q", key)
		}
		if got := Translate("ru", key); got != text {
			t.Fatalf("Translate(ru, %q) = %q, want %q", key, got, text)
		}
	}
}
