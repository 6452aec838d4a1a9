package raw

import "testing"

func TestGetters(t *testing.T) {
	t.Setenv("LOG_LEVEL", " info ")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "3")
	t.Setenv("LOG_BAD_INT", "-4")

	c := New().Prefix("LOG_")
	if got := c.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get = %q", got)
	}
	if got := c.Get("MISSING", "debug"); got != "debug" {
		t.Fatalf("Get default = %q", got)
	}
	if !c.GetBool("CALLER", false) {
		t.Fatal("GetBool yes should be true")
	}
	if c.GetBool("MISSING", false) {
		t.Fatal("GetBool default should be false")
	}
	if got := c.GetInt("SAMPLE_EVERY", 0); got != 3 {
		t.Fatalf("GetInt = %d", got)
	}
	if got := c.GetInt("BAD_INT", 7); got != 7 {
		t.Fatalf("GetInt negative should fall back, got %d", got)
	}
}
