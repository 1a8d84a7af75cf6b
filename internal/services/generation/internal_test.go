package generation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLinearBackOff(t *testing.T) {
	b := &linearBackOff{delay: 2 * time.Second, max: MaxRetryWait}

	got := []time.Duration{b.NextBackOff(), b.NextBackOff(), b.NextBackOff()}
	want := []time.Duration{2 * time.Second, 4 * time.Second, 5 * time.Second}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("backoff schedule (-want +got):\n%s", diff)
	}

	b.Reset()
	if d := b.NextBackOff(); d != 2*time.Second {
		t.Errorf("after reset got %s", d)
	}
}

func TestImageFileName(t *testing.T) {
	now := time.UnixMilli(1733392800000)
	tests := map[string]string{
		"image/png":  "vertical-nft-1733392800000.png",
		"image/jpeg": "vertical-nft-1733392800000.jpg",
		"image/webp": "vertical-nft-1733392800000.webp",
		"":           "vertical-nft-1733392800000.png",
	}
	for mimeType, want := range tests {
		if got := imageFileName(now, mimeType); got != want {
			t.Errorf("imageFileName(%q) = %q, want %q", mimeType, got, want)
		}
	}
}
