package repositories

import (
	"strings"
)

const maxSlugLength = 80

// Bulgarian Cyrillic to Latin, so slugs stay URL-safe whatever language the
// listing was authored in.
var translitTable = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f",
	'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sht", 'ъ': "a",
	'ь': "y", 'ю': "yu", 'я': "ya",
}

// slugify joins the given segments into a lowercase, hyphen-separated,
// URL-safe slug truncated to maxSlugLength. All segments are expected to be
// in the task's source language so the slug reads consistently.
func slugify(segments ...string) string {
	var b strings.Builder
	lastHyphen := true
	for _, seg := range segments {
		for _, r := range strings.ToLower(seg) {
			switch {
			case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
				b.WriteRune(r)
				lastHyphen = false
			default:
				if tr, ok := translitTable[r]; ok {
					b.WriteString(tr)
					lastHyphen = false
					continue
				}
				if !lastHyphen {
					b.WriteByte('-')
					lastHyphen = true
				}
			}
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
		slug = strings.TrimRight(slug, "-")
	}
	return slug
}
