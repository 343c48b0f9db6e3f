package gmail

import (
	"net/mail"
	"strings"
)

// AddressEntry is one parsed mailbox: an optional display name plus the
// address itself.
type AddressEntry struct {
	Display string
	Address string
}

// Bare returns the address lowercased, for case-insensitive comparison.
func (e AddressEntry) Bare() string {
	return strings.ToLower(e.Address)
}

// String re-emits the entry in RFC 5322 form, quoting the display name
// when it needs quoting. Entries without a display name come back as the
// bare address, no angle brackets.
func (e AddressEntry) String() string {
	if e.Display == "" {
		return e.Address
	}
	addr := mail.Address{Name: e.Display, Address: e.Address}
	return addr.String()
}

// ReplyAllHeaders carries the original message's addressing headers that
// feed reply-all recipient resolution.
type ReplyAllHeaders struct {
	From    string
	To      string
	Cc      string
	ReplyTo string
}

// ReplyAllRecipients is the resolved recipient set for a reply-all.
type ReplyAllRecipients struct {
	// To is the primary recipient: Reply-To when the original set one,
	// otherwise From.
	To string

	// Cc is everyone else from the original To and Cc lines, minus the
	// primary recipient, the caller's own address, and duplicates.
	Cc []AddressEntry
}

// ResolveReplyAll computes reply-all recipients from the original headers.
// self is the caller's own address and is always excluded. Deduplication is
// by lowercased bare address with first occurrence winning; scan order is
// From, To, Cc.
func ResolveReplyAll(headers ReplyAllHeaders, self string) ReplyAllRecipients {
	primary := headers.ReplyTo
	if strings.TrimSpace(primary) == "" {
		primary = headers.From
	}

	seen := map[string]bool{
		"": true,
		strings.ToLower(self): true,
	}
	if bare := ExtractBareAddress(primary); bare != "" {
		seen[bare] = true
	}

	var cc []AddressEntry
	for _, header := range []string{headers.From, headers.To, headers.Cc} {
		for _, entry := range parseAddressList(header) {
			bare := entry.Bare()
			if seen[bare] {
				continue
			}
			seen[bare] = true
			cc = append(cc, entry)
		}
	}
	return ReplyAllRecipients{To: primary, Cc: cc}
}

// parseAddressList parses a comma-separated address header. Quoted display
// names containing commas are handled correctly. Unparseable headers yield
// nil rather than an error; reply-all degrades to fewer recipients.
func parseAddressList(header string) []AddressEntry {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	parsed, err := mail.ParseAddressList(header)
	if err != nil {
		return nil
	}
	entries := make([]AddressEntry, 0, len(parsed))
	for _, addr := range parsed {
		entries = append(entries, AddressEntry{Display: addr.Name, Address: addr.Address})
	}
	return entries
}

// ExtractBareAddress pulls the lowercased address out of a mailbox like
// `"Ada L" <ada@example.com>`. Input that does not parse is trimmed and
// lowercased as-is.
func ExtractBareAddress(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if addr, err := mail.ParseAddress(raw); err == nil {
		return strings.ToLower(addr.Address)
	}
	return strings.ToLower(raw)
}

// FormatAddressList renders entries as a comma-separated header value.
func FormatAddressList(entries []AddressEntry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, entry.String())
	}
	return strings.Join(parts, ", ")
}
