package oracle

import (
	"fmt"
	"math/rand"
	"strings"
)

const systemPrompt = "You are a helpful AI that outputs strict JSON only."

// Categories — допустимые категории вопросов
var Categories = []string{
	"Quantitative Aptitude",
	"Logical Reasoning",
	"Verbal Ability",
	"Data Interpretation",
	"Puzzles",
	"Technical Aptitude",
}

// DefaultCategory подставляется, когда генератор не указал категорию
const DefaultCategory = "Quantitative Aptitude"

// subTopics — пул подтем для разнообразия генерации
var subTopics = []string{
	"Time & Work (Efficiency)", "Time & Work (Wages)", "Pipes & Cisterns",
	"Speed (Relative Speed)", "Speed (Trains)", "Speed (Boats & Streams)",
	"Probability (Coins)", "Probability (Dice)", "Probability (Cards)",
	"Permutation (Words)", "Profit & Loss (Discounts)", "Ages (Ratios)",
	"Blood Relations (Family Tree)", "Syllogisms (Possibility)", "Percentages (Election)",
	"Simple Interest vs Compound Interest", "Mensuration (Area vs Volume)",
}

// RandomSubTopics возвращает n случайных подтем без повторов
func RandomSubTopics(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(subTopics) {
		n = len(subTopics)
	}

	perm := rand.Perm(len(subTopics))
	picked := make([]string, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, subTopics[idx])
	}
	return picked
}

// IsValidCategory проверяет, входит ли категория в список допустимых
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// buildPrompt собирает пользовательский промпт для одной партии
func buildPrompt(req Request) string {
	topics := req.SubTopics
	if len(topics) == 0 {
		topics = RandomSubTopics(3)
	}

	return fmt.Sprintf(`
You are an expert aptitude tutor. Generate %d unique %s level aptitude questions.
Focus on these sub-topics: %s.

STRICT RULES:
1. Return ONLY valid JSON — no extra text.
2. "correct_answer" MUST be an integer index 0-3.
3. "options" must be an array of exactly 4 distinct strings.
4. "explanation" must be detailed step-by-step.
5. "category" must be one of: %s.

JSON Output Format:
{
  "questions": [
    {
      "question_text": "string",
      "options": ["A", "B", "C", "D"],
      "correct_answer": 0,
      "explanation": "string",
      "hint": "string",
      "category": "string"
    }
  ]
}`, req.Count, req.Difficulty, strings.Join(topics, ", "), strings.Join(Categories, ", "))
}
