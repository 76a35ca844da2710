package config

import (
	"testing"
	"time"

	kit "orderexport/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	ctp := New().Prefix("CTP_")
	if got := ctp.key("PROJECT_KEY"); got != "CTP_PROJECT_KEY" {
		t.Fatalf("key() = %q", got)
	}
	nested := New().Prefix("CORE_").Prefix("EXPORT_")
	if got := nested.key("FOLDER"); got != "CORE_EXPORT_FOLDER" {
		t.Fatalf("nested key() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("STORAGE_")
	t.Setenv("STORAGE_BUCKET", "  exports ")
	if got := c.MustString("BUCKET"); got != "exports" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustInt(t *testing.T) {
	c := New().Prefix("SVC_")
	t.Setenv("SVC_WORKERS", "  8 ")
	if got := c.MustInt("WORKERS"); got != 8 {
		t.Fatalf("MustInt = %d, want 8", got)
	}
	kit.MustPanic(t, func() { _ = c.MustInt("MISSING") })
	t.Setenv("SVC_BAD", "x")
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
}

func TestMustDuration(t *testing.T) {
	c := New().Prefix("CTP_")
	t.Setenv("CTP_TIMEOUT", " 250ms ")
	if got := c.MustDuration("TIMEOUT"); got != 250*time.Millisecond {
		t.Fatalf("MustDuration = %v", got)
	}
	t.Setenv("CTP_BAD", "nope")
	kit.MustPanic(t, func() { _ = c.MustDuration("BAD") })
	kit.MustPanic(t, func() { _ = c.MustDuration("UNSET") })
}

func TestMustURL(t *testing.T) {
	c := New().Prefix("CTP_")
	t.Setenv("CTP_API_URL", "https://api.europe-west1.gcp.commercetools.com")
	if u := c.MustURL("API_URL"); !u.IsAbs() || u.Host != "api.europe-west1.gcp.commercetools.com" {
		t.Fatalf("MustURL = %v", u)
	}
	t.Setenv("CTP_BAD1", "://bad")
	kit.MustPanic(t, func() { _ = c.MustURL("BAD1") })
	t.Setenv("CTP_BAD2", "/relative")
	kit.MustPanic(t, func() { _ = c.MustURL("BAD2") })
}

func TestMayPort(t *testing.T) {
	c := New().Prefix("CORE_API_")
	if got := c.MayPort("PORT", ":8080"); got != ":8080" {
		t.Fatalf("MayPort default = %q", got)
	}
	t.Setenv("CORE_API_PORT", "4000")
	if got := c.MayPort("PORT", ":8080"); got != ":4000" {
		t.Fatalf("MayPort bare = %q", got)
	}
	t.Setenv("CORE_API_PORT", "127.0.0.1:9090")
	if got := c.MayPort("PORT", ":8080"); got != "127.0.0.1:9090" {
		t.Fatalf("MayPort host:port = %q", got)
	}
	t.Setenv("CORE_API_BAD", "abc")
	kit.MustPanic(t, func() { _ = c.MayPort("BAD", "") })
	t.Setenv("CORE_API_OOB", "70000")
	kit.MustPanic(t, func() { _ = c.MayPort("OOB", "") })
}

func TestRequireAndHas(t *testing.T) {
	c := New().Prefix("REQ_")
	t.Setenv("REQ_A", "x")
	t.Setenv("REQ_B", "y")
	t.Setenv("REQ_WS", "   ")
	c.Require("A", "B")
	kit.MustPanic(t, func() { c.Require("A", "C") })
	kit.MustPanic(t, func() { c.Require("WS") })
	if !c.Has("A") || c.Has("WS") || c.Has("C") {
		t.Fatalf("Has mismatch")
	}
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("M_")

	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
	t.Setenv("M_NAME", " orders ")
	if got := c.MayString("NAME", "x"); got != "orders" {
		t.Fatalf("MayString = %q", got)
	}

	t.Setenv("M_INT", " 7 ")
	t.Setenv("M_INT_BAD", "x")
	if c.MayInt("INT", 0) != 7 || c.MayInt("INT_BAD", 3) != 3 || c.MayInt("NONE", 9) != 9 {
		t.Fatalf("MayInt mismatch")
	}

	t.Setenv("M_RATE", "0.25")
	t.Setenv("M_RATE_BAD", "quarter")
	if c.MayFloat64("RATE", 1) != 0.25 || c.MayFloat64("RATE_BAD", 1) != 1 {
		t.Fatalf("MayFloat64 mismatch")
	}

	t.Setenv("M_ON", "true")
	t.Setenv("M_ON_BAD", "nope")
	if !c.MayBool("ON", false) || c.MayBool("ON_BAD", false) || !c.MayBool("NONE", true) {
		t.Fatalf("MayBool mismatch")
	}

	t.Setenv("M_DUR", "150ms")
	t.Setenv("M_DUR_BAD", "nope")
	if c.MayDuration("DUR", time.Second) != 150*time.Millisecond || c.MayDuration("DUR_BAD", time.Minute) != time.Minute {
		t.Fatalf("MayDuration mismatch")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CTP_")
	def := []string{"view_orders:proj"}
	if got := c.MayCSV("SCOPES", def); len(got) != 1 || got[0] != def[0] {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CTP_SCOPES", " view_orders:p, manage_project:p , ,view_customers:p ,, ")
	got := c.MayCSV("SCOPES", nil)
	want := []string{"view_orders:p", "manage_project:p", "view_customers:p"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	t.Setenv("CTP_SCOPES", " , ,  ,")
	if got := c.MayCSV("SCOPES", def); len(got) != 1 || got[0] != def[0] {
		t.Fatalf("MayCSV all-empty -> default mismatch: %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("STORAGE_")

	if got := c.MayEnum("BACKEND", "gcs", "gcs", "s3", "local"); got != "gcs" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("STORAGE_BACKEND", "S3")
	if got := c.MayEnum("BACKEND", "gcs", "gcs", "s3", "local"); got != "s3" {
		t.Fatalf("MayEnum normalised value = %q, want s3", got)
	}
	t.Setenv("STORAGE_BACKEND", "ftp")
	kit.MustPanic(t, func() { _ = c.MayEnum("BACKEND", "gcs", "gcs", "s3", "local") })

	if got := New().Prefix("NONE_").MayEnum("X", "", "a"); got != "" {
		t.Fatalf("MayEnum empty default = %q", got)
	}
}
