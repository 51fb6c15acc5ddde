package linkfilter

import "testing"

func TestRule_Extract(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "Post with www", text: "https://www.instagram.com/p/CxYz_12-a/", want: "https://www.instagram.com/p/CxYz_12-a/", wantOK: true},
		{name: "Reel without www or slash", text: "check this https://instagram.com/reel/AbC123", want: "https://www.instagram.com/reel/AbC123/", wantOK: true},
		{name: "Short domain alias", text: "http://instagr.am/tv/xyz/", want: "https://www.instagram.com/tv/xyz/", wantOK: true},
		{name: "Upper case host and kind", text: "HTTPS://WWW.INSTAGRAM.COM/P/Post1/", want: "https://www.instagram.com/p/Post1/", wantOK: true},
		{name: "First of several links", text: "https://instagram.com/p/one/ and https://instagram.com/p/two/", want: "https://www.instagram.com/p/one/", wantOK: true},
		{name: "Profile link rejected", text: "https://www.instagram.com/alice/", wantOK: false},
		{name: "Other domain rejected", text: "https://www.tiktok.com/p/abc/", wantOK: false},
		{name: "Plain text rejected", text: "hello everyone", wantOK: false},
	}

	rule := Current()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rule.Extract(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Extract(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got.URL != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.text, got.URL, tt.want)
			}
			if ok && got.RuleVersion != CurrentVersion {
				t.Errorf("RuleVersion = %q, want %q", got.RuleVersion, CurrentVersion)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("v1"); err != nil {
		t.Fatalf("Lookup(v1) error = %v", err)
	}
	if _, err := Lookup("v0"); err == nil {
		t.Fatal("Lookup(v0) expected error")
	}
}

func TestRule_Normalize(t *testing.T) {
	got, ok := Current().Normalize("  https://instagram.com/p/abc  ")
	if !ok || got != "https://www.instagram.com/p/abc/" {
		t.Errorf("Normalize() = %q, %v", got, ok)
	}
	if _, ok := Current().Normalize("https://example.com/p/abc/"); ok {
		t.Error("Normalize() accepted a foreign link")
	}
}
