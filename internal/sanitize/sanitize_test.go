package sanitize_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdg-garage/mission-registration/internal/sanitize"
)

var nameCharset = regexp.MustCompile(`^[a-zA-Z '.-]*$`)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Wanjiru", "Wanjiru"},
		{"strips digits and symbols", "Jo3hn$ Do@e", "John Doe"},
		{"collapses whitespace", "  Mary   Jane  ", "Mary Jane"},
		{"keeps apostrophe period hyphen", "O'Neil-Smith Jr.", "O'Neil-Smith Jr."},
		{"shortens punctuation runs", "Ann...-'e", "Ann..e"},
		{"truncates to 25", strings.Repeat("a", 30), strings.Repeat("a", 25)},
		{"trims after truncation", strings.Repeat("a", 24) + " bcd", strings.Repeat("a", 24)},
		{"empty stays empty", "", ""},
		{"only junk", "1234!@#$", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize.Name(tt.in))
		})
	}
}

func TestName_Properties(t *testing.T) {
	inputs := []string{
		"Jo3hn$ Do@e",
		"\t\tMary \n Jane",
		"ÉlodieÅ Nguyễn",
		"a....b----c''''d",
		strings.Repeat("ab ", 20),
		"-'.-'.-'.",
	}
	for _, in := range inputs {
		out := sanitize.Name(in)
		assert.Regexp(t, nameCharset, out, "input %q", in)
		assert.NotContains(t, out, "  ", "input %q", in)
		assert.LessOrEqual(t, len(out), sanitize.MaxNameLen, "input %q", in)
		assert.Equal(t, out, sanitize.Name(out), "not idempotent for %q", in)
	}
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "0712345678", sanitize.Phone("(071) 234-5678"))
	assert.Equal(t, "2547123456", sanitize.Phone("+254 712 345 678"))
	assert.Equal(t, "", sanitize.Phone("call me"))

	for _, in := range []string{"07-12 34 56 78 99", "abc123", "++++", "0712345678"} {
		out := sanitize.Phone(in)
		assert.Regexp(t, `^\d*$`, out)
		assert.LessOrEqual(t, len(out), sanitize.MaxPhoneLen)
		assert.Equal(t, out, sanitize.Phone(out))
	}
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "Nairobi, Kenya", sanitize.Location("Nairobi, Kenya!"))
	assert.Equal(t, "Kisumu (West) & Co/2-3.", sanitize.Location("Kisumu (West) & Co/2-3.#"))
	assert.Len(t, sanitize.Location(strings.Repeat("x", 40)), sanitize.MaxLocationLen)
	assert.Equal(t, "NairobiKE", sanitize.Location("Nai\trobi\nKE"), "only plain spaces are kept")
	out := sanitize.Location("Eldoret%% Town*")
	assert.Equal(t, out, sanitize.Location(out))
}

func TestText(t *testing.T) {
	assert.Equal(t, "No peanuts <please>", sanitize.Text("No peanuts <please>"))

	long := strings.Repeat("é", 600)
	out := sanitize.Text(long)
	assert.Equal(t, sanitize.MaxTextLen, len([]rune(out)))
	assert.Equal(t, out, sanitize.Text(out))
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "1500", sanitize.Amount("KES 1,500"))
	assert.Equal(t, "100", sanitize.Amount("-100"))
	assert.Equal(t, "1050", sanitize.Amount("10.50"))
	assert.Equal(t, "123456789", sanitize.Amount("1234567890123"))
	assert.Equal(t, "", sanitize.Amount("abc"))
}
