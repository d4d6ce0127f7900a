package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/weeks/pkg/render/styles"
)

// logoMark is the 160×160 app mark: an amber frame around a dark tile with a
// rising sun and the "4W" monogram.
const logoMark = `<defs>
    <linearGradient id="logo-sun" x1="0%" y1="0%" x2="100%" y2="100%">
      <stop offset="0%" stop-color="#fef08a"/>
      <stop offset="45%" stop-color="#facc15"/>
      <stop offset="100%" stop-color="#eab308"/>
    </linearGradient>
    <linearGradient id="logo-shadow" x1="0%" y1="0%" x2="0%" y2="100%">
      <stop offset="0%" stop-color="#0f172a"/>
      <stop offset="100%" stop-color="#020617"/>
    </linearGradient>
  </defs>
  <rect width="160" height="160" rx="36" fill="url(#logo-shadow)"/>
  <g transform="translate(24 24)">
    <rect width="112" height="112" rx="30" fill="rgba(15, 23, 42, 0.45)"/>
    <rect x="6" y="6" width="100" height="100" rx="28" fill="url(#logo-sun)"/>
    <rect x="18" y="18" width="76" height="76" rx="24" fill="url(#logo-shadow)" opacity="0.92"/>
    <path d="M34 80c10-18 20-36 30-54l30 54z" fill="url(#logo-sun)" opacity="0.85"/>
    <text x="56" y="68" text-anchor="middle" font-size="40" font-weight="700" font-family="'Inter', 'Segoe UI', 'Helvetica Neue', sans-serif" fill="#f8fafc">4W</text>
  </g>`

// Logo returns the standalone logo mark at size×size.
func Logo(size float64) []byte {
	if size <= 0 {
		size = 96
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 160 160" role="img" aria-label="4000 Weeks logo">`+"\n  ",
		styles.Num(size), styles.Num(size))
	buf.WriteString(logoMark)
	buf.WriteString("\n</svg>\n")
	return buf.Bytes()
}

// writeLogoMark embeds the logo mark as a nested viewport.
func writeLogoMark(buf *bytes.Buffer, x, y, size float64) {
	fmt.Fprintf(buf, `  <svg class="logo" x="%s" y="%s" width="%s" height="%s" viewBox="0 0 160 160">`+"\n  ",
		styles.Num(x), styles.Num(y), styles.Num(size), styles.Num(size))
	buf.WriteString(logoMark)
	buf.WriteString("\n  </svg>\n")
}
