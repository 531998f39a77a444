package utils

import (
	"regexp"
	"strings"
)

var nonCodeChars = regexp.MustCompile(`[^a-z0-9]+`)

var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// GenerateCodeFromName строит код рабочего центра из названия.
// "Линия сборки №2" -> "LINIYA_SBORKI_2"
func GenerateCodeFromName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if repl, ok := translit[r]; ok {
			sb.WriteString(repl)
			continue
		}
		sb.WriteRune(r)
	}
	res := nonCodeChars.ReplaceAllString(sb.String(), "_")
	return strings.ToUpper(strings.Trim(res, "_"))
}
