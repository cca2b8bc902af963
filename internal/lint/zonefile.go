package lint

import (
	"fmt"
	"math"
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

// zonefileRule validates fenced code blocks tagged as BIND zone file
// listings (languages "zone", "bind", "dns-zone", "zonefile"). Listings
// in docs are often partial, so presence of $ORIGIN is not required;
// what is on the page still has to be syntactically sound.
type zonefileRule struct{}

func (zonefileRule) Name() string { return "zonefile-valid" }

var zoneLangs = map[string]bool{
	"zone":     true,
	"bind":     true,
	"dns-zone": true,
	"zonefile": true,
}

func (zonefileRule) Check(_ *Target, in PageInput, report func(Finding)) {
	src := scanSource(in.Page)
	for _, fence := range src.fences {
		if !zoneLangs[fence.Lang] {
			continue
		}
		for _, d := range checkZone(fence.Body) {
			sev := SeverityError
			if d.warn {
				sev = SeverityWarning
			}
			report(Finding{
				Rule:     "zonefile-valid",
				Severity: sev,
				File:     in.Page.SourcePath,
				Line:     fence.BodyLine + d.line - 1,
				Message:  d.msg,
			})
		}
	}
}

type zoneDiag struct {
	line int // 1-based within the listing
	msg  string
	warn bool
}

// zoneLogicalLine is one record or directive after comment stripping and
// parenthesis joining, remembering where it started.
type zoneLogicalLine struct {
	line int
	text string
}

// joinZoneLines strips ;-comments (respecting quoted strings) and joins
// parenthesized continuations, as BIND does for multi-line SOA records.
func joinZoneLines(body []string) ([]zoneLogicalLine, []zoneDiag) {
	var out []zoneLogicalLine
	var diags []zoneDiag

	depth := 0
	start := 0
	var buf strings.Builder

	flush := func() {
		text := strings.TrimSpace(buf.String())
		buf.Reset()
		if text != "" {
			out = append(out, zoneLogicalLine{line: start, text: text})
		}
	}

	for i, raw := range body {
		n := i + 1
		stripped, opened, closed := stripZoneComment(raw)
		if depth == 0 {
			start = n
		}
		depth += opened - closed
		if depth < 0 {
			diags = append(diags, zoneDiag{line: n, msg: "unbalanced closing parenthesis"})
			depth = 0
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(stripped)
		if depth == 0 {
			flush()
		}
	}
	if depth > 0 {
		diags = append(diags, zoneDiag{line: start, msg: "unclosed parenthesis in record"})
		flush()
	}
	return out, diags
}

// stripZoneComment removes a trailing ;-comment and counts parentheses,
// both outside quoted strings.
func stripZoneComment(s string) (stripped string, opened, closed int) {
	var b strings.Builder
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
			b.WriteByte(c)
		case inQuote:
			b.WriteByte(c)
		case c == ';':
			return b.String(), opened, closed
		case c == '(':
			opened++
			b.WriteByte(' ')
		case c == ')':
			closed++
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), opened, closed
}

var zoneTTLRE = regexp.MustCompile(`^(?i)(?:\d+[wdhms]?)+$`)

func looksLikeZoneTTL(s string) bool {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return false
	}
	return zoneTTLRE.MatchString(s)
}

// parseZoneTTL evaluates a TTL token such as "3600", "1h30m" or "2w".
func parseZoneTTL(s string) (uint32, error) {
	var total uint64
	i := 0
	for i < len(s) {
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == i {
			return 0, fmt.Errorf("invalid TTL %q", s)
		}
		v, err := strconv.ParseUint(s[i:j], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid TTL %q", s)
		}
		mult := uint64(1)
		if j < len(s) {
			switch s[j] {
			case 's', 'S':
			case 'm', 'M':
				mult = 60
			case 'h', 'H':
				mult = 3600
			case 'd', 'D':
				mult = 86400
			case 'w', 'W':
				mult = 604800
			default:
				return 0, fmt.Errorf("invalid TTL unit %q in %q", string(s[j]), s)
			}
			j++
		}
		total += v * mult
		if total > math.MaxUint32 {
			return 0, fmt.Errorf("TTL %q overflows 32 bits", s)
		}
		i = j
	}
	return uint32(total), nil
}

func looksLikeZoneClass(s string) bool {
	switch strings.ToUpper(s) {
	case "IN", "CH", "HS":
		return true
	}
	return false
}

// rdata field-count bounds per supported type; -1 means unbounded.
var zoneRecordShapes = map[string]struct{ min, max int }{
	"A":     {1, 1},
	"AAAA":  {1, 1},
	"CNAME": {1, 1},
	"NS":    {1, 1},
	"PTR":   {1, 1},
	"MX":    {2, 2},
	"SOA":   {7, 7},
	"SRV":   {4, 4},
	"TXT":   {1, -1},
	"CAA":   {3, 3},
}

// checkZone validates a zone file listing line by line.
func checkZone(body []string) []zoneDiag {
	logical, diags := joinZoneLines(body)

	for _, ll := range logical {
		fields := strings.Fields(ll.text)
		if len(fields) == 0 {
			continue
		}
		fail := func(format string, args ...any) {
			diags = append(diags, zoneDiag{line: ll.line, msg: fmt.Sprintf(format, args...)})
		}
		warn := func(format string, args ...any) {
			diags = append(diags, zoneDiag{line: ll.line, msg: fmt.Sprintf(format, args...), warn: true})
		}

		if strings.HasPrefix(fields[0], "$") {
			checkZoneDirective(fields, fail, warn)
			continue
		}
		checkZoneRecord(fields, fail, warn)
	}

	sortZoneDiags(diags)
	return diags
}

func sortZoneDiags(diags []zoneDiag) {
	for i := 1; i < len(diags); i++ {
		for j := i; j > 0 && diags[j].line < diags[j-1].line; j-- {
			diags[j], diags[j-1] = diags[j-1], diags[j]
		}
	}
}

func checkZoneDirective(fields []string, fail, warn func(string, ...any)) {
	switch strings.ToUpper(fields[0]) {
	case "$ORIGIN":
		if len(fields) != 2 {
			fail("$ORIGIN takes exactly one domain name, got %d fields", len(fields)-1)
			return
		}
		if !strings.HasSuffix(fields[1], ".") {
			warn("$ORIGIN %s should be absolute (end with a dot)", fields[1])
		}
	case "$TTL":
		if len(fields) != 2 {
			fail("$TTL takes exactly one value, got %d fields", len(fields)-1)
			return
		}
		if _, err := parseZoneTTL(fields[1]); err != nil {
			fail("$TTL: %v", err)
		}
	default:
		warn("directive %s is not validated", fields[0])
	}
}

// checkZoneRecord validates owner/TTL/class/type ordering and the rdata
// shape for the record types that show up in the handbook.
func checkZoneRecord(fields []string, fail, warn func(string, ...any)) {
	i := 0

	// Owner is optional: a line may start at the TTL, class or type to
	// inherit the previous owner. Type names only count here when written
	// uppercase, so an owner like "srv" is not mistaken for an SRV type.
	if !looksLikeZoneTTL(fields[0]) && !looksLikeZoneClass(fields[0]) && !isUpperZoneType(fields[0]) {
		i++
		if i >= len(fields) {
			fail("record %q has no type", fields[0])
			return
		}
	}

	// TTL and class may appear in either order, each at most once.
	sawTTL, sawClass := false, false
prefix:
	for i < len(fields) {
		switch {
		case !sawTTL && looksLikeZoneTTL(fields[i]):
			if _, err := parseZoneTTL(fields[i]); err != nil {
				fail("%v", err)
			}
			sawTTL = true
			i++
		case !sawClass && looksLikeZoneClass(fields[i]):
			sawClass = true
			i++
		default:
			break prefix
		}
	}
	if i >= len(fields) {
		fail("record is missing a type and rdata")
		return
	}
	typ := strings.ToUpper(fields[i])
	shape, known := zoneRecordShapes[typ]
	if !known {
		fail("unknown record type %q", fields[i])
		return
	}
	i++
	rdata := fields[i:]
	if len(rdata) < shape.min || (shape.max >= 0 && len(rdata) > shape.max) {
		if shape.min == shape.max {
			fail("%s record needs %d rdata field(s), got %d", typ, shape.min, len(rdata))
		} else {
			fail("%s record needs at least %d rdata field(s), got %d", typ, shape.min, len(rdata))
		}
		return
	}

	switch typ {
	case "A":
		addr, err := netip.ParseAddr(rdata[0])
		if err != nil {
			fail("A record address %q is not a valid IP", rdata[0])
		} else if !addr.Is4() && !addr.Is4In6() {
			fail("A record address %q is IPv6; use an AAAA record", rdata[0])
		}
	case "AAAA":
		addr, err := netip.ParseAddr(rdata[0])
		if err != nil {
			fail("AAAA record address %q is not a valid IP", rdata[0])
		} else if addr.Is4() {
			fail("AAAA record address %q is IPv4; use an A record", rdata[0])
		}
	case "MX":
		if _, err := strconv.ParseUint(rdata[0], 10, 16); err != nil {
			fail("MX preference %q must be an integer 0-65535", rdata[0])
		}
		if !strings.Contains(rdata[1], ".") {
			warn("MX exchange %q looks relative; zone examples usually use absolute names", rdata[1])
		}
	case "SOA":
		// MNAME RNAME SERIAL REFRESH RETRY EXPIRE MINIMUM
		if _, err := strconv.ParseUint(rdata[2], 10, 32); err != nil {
			fail("SOA serial %q must be an unsigned 32-bit integer", rdata[2])
		}
		names := [4]string{"refresh", "retry", "expire", "minimum"}
		for k := 0; k < 4; k++ {
			if _, err := parseZoneTTL(rdata[3+k]); err != nil {
				fail("SOA %s: %v", names[k], err)
			}
		}
	case "SRV":
		names := [3]string{"priority", "weight", "port"}
		for k := 0; k < 3; k++ {
			if _, err := strconv.ParseUint(rdata[k], 10, 16); err != nil {
				fail("SRV %s %q must be an integer 0-65535", names[k], rdata[k])
			}
		}
	case "CAA":
		if _, err := strconv.ParseUint(rdata[0], 10, 8); err != nil {
			fail("CAA flag %q must be an integer 0-255", rdata[0])
		}
	}
}

func isUpperZoneType(s string) bool {
	_, ok := zoneRecordShapes[s]
	return ok
}
