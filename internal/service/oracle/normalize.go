package oracle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// phrasePattern ловит формулировки вида "Option B" и "Answer: 2"
var phrasePattern = regexp.MustCompile(`(?i)(?:option|answer)\s*:?\s*([a-d0-3])`)

// NormalizeAnswerIndex приводит сырой токен "правильного ответа" генератора
// к каноническому индексу 0-3. Порядок разрешения:
//  1. уже валидное число 0-3;
//  2. одиночная буква a-d;
//  3. одиночная цифра 0-3;
//  4. совпадение с текстом варианта (точное, затем подстрока в обе стороны);
//  5. фраза "option/answer <буква-или-цифра>".
//
// Второе возвращаемое значение — удалось ли сопоставление. При false индекс
// равен 0: это осознанно сохраненный lossy-fallback исходной системы,
// вызывающая сторона обязана записать его в аудит-лог, т.к. дефолт может
// молча исказить правильный ответ.
func NormalizeAnswerIndex(raw interface{}, options []string) (int, bool) {
	// 1. Числовые типы: json.Unmarshal дает float64, но принимаем и int
	switch v := raw.(type) {
	case int:
		if v >= 0 && v <= 3 {
			return v, true
		}
	case float64:
		if v == float64(int(v)) && v >= 0 && v <= 3 {
			return int(v), true
		}
	}

	str := strings.TrimSpace(fmt.Sprintf("%v", raw))
	if str == "" {
		return 0, false
	}
	lower := strings.ToLower(str)

	// 2. Одиночная буква a-d
	if len(lower) == 1 && lower[0] >= 'a' && lower[0] <= 'd' {
		return int(lower[0] - 'a'), true
	}

	// 3. Одиночная цифра 0-3
	if len(str) == 1 && str[0] >= '0' && str[0] <= '3' {
		n, _ := strconv.Atoi(str)
		return n, true
	}

	// 4. Совпадение с текстом варианта: сначала точное, затем подстрока
	for i, opt := range options {
		if strings.ToLower(strings.TrimSpace(opt)) == lower {
			return i, true
		}
	}
	for i, opt := range options {
		lowerOpt := strings.ToLower(opt)
		if strings.Contains(lowerOpt, lower) || strings.Contains(lower, lowerOpt) {
			return i, true
		}
	}

	// 5. Фразы вида "Option B" / "answer: 2"
	if m := phrasePattern.FindStringSubmatch(str); m != nil {
		token := strings.ToLower(m[1])
		if token[0] >= '0' && token[0] <= '3' {
			n, _ := strconv.Atoi(token)
			return n, true
		}
		return int(token[0] - 'a'), true
	}

	// Последний рубеж: индекс 0. Не падаем, но сигнализируем вызывающему.
	return 0, false
}
