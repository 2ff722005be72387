package browser

import "testing"

func TestIsChallenge(t *testing.T) {
	cases := []struct {
		name  string
		title string
		html  string
		want  bool
	}{
		{"cloudflare title", "Just a moment...", "<html></html>", true},
		{"title case insensitive", "JUST A MOMENT", "", true},
		{"attention required", "Attention Required! | Cloudflare", "", true},
		{"verification marker", "Checking", `<div id="cf-browser-verification"></div>`, true},
		{"challenge marker", "", `<script src="/cdn-cgi/challenge-platform/x.js"></script>`, true},
		{"turnstile widget", "", `<div class="cf-turnstile"></div>`, true},
		{"real product page", "Winter Rose Bouquet", `<h1 class="products-name">Winter Rose Bouquet</h1>`, false},
		{"empty page", "", "", false},
		{"moment in prose", "Capture the moment", "<p>a moment to remember</p>", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsChallenge(tc.title, tc.html); got != tc.want {
				t.Errorf("IsChallenge(%q, ...) = %v, want %v", tc.title, got, tc.want)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.defaults()

	if cfg.NavTimeout <= 0 {
		t.Error("NavTimeout should default")
	}
	if cfg.SettleMax <= cfg.SettleMin {
		t.Error("SettleMax must exceed SettleMin")
	}
	if len(cfg.UserAgents) == 0 {
		t.Error("UserAgents should default to the built-in set")
	}
}
