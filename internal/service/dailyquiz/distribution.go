package dailyquiz

import (
	"sort"

	"github.com/yourusername/aptitude-api/internal/domain/entity"
)

// baseDistribution — базовая таблица распределения сложностей на 10 вопросов:
// [Easy, Medium, Hard] по уровню пользователя
var baseDistribution = map[string][3]int{
	entity.LevelBeginner:     {7, 3, 0},
	entity.LevelIntermediate: {4, 5, 1},
	entity.LevelAdvanced:     {2, 5, 3},
	entity.LevelPro:          {1, 4, 5},
	entity.LevelExpert:       {0, 3, 7},
}

// ResolveDistribution возвращает распределение {Easy, Medium, Hard} → count
// для уровня пользователя. Неизвестный уровень получает распределение
// Beginner. Сумма всегда равна total; total <= 0 дает нулевое распределение.
// Чистая функция без побочных эффектов.
func ResolveDistribution(userLevel string, total int) map[string]int {
	dist := map[string]int{
		entity.DifficultyEasy:   0,
		entity.DifficultyMedium: 0,
		entity.DifficultyHard:   0,
	}
	if total <= 0 {
		return dist
	}

	base, ok := baseDistribution[userLevel]
	if !ok {
		base = baseDistribution[entity.LevelBeginner]
	}

	if total == DefaultDailyQuestionCount {
		dist[entity.DifficultyEasy] = base[0]
		dist[entity.DifficultyMedium] = base[1]
		dist[entity.DifficultyHard] = base[2]
		return dist
	}

	// Масштабирование на другой total методом наибольших остатков
	type share struct {
		difficulty string
		floor      int
		remainder  int // дробная часть * 10
	}

	shares := make([]share, 0, 3)
	assigned := 0
	for i, difficulty := range entity.Difficulties {
		exact := base[i] * total
		floor := exact / DefaultDailyQuestionCount
		shares = append(shares, share{
			difficulty: difficulty,
			floor:      floor,
			remainder:  exact % DefaultDailyQuestionCount,
		})
		assigned += floor
	}

	// Остаток раздается тирам с наибольшей дробной частью;
	// при равенстве — более легким (стабильная сортировка)
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder > shares[j].remainder
	})
	for i := 0; i < total-assigned; i++ {
		shares[i%len(shares)].floor++
	}

	for _, s := range shares {
		dist[s.difficulty] = s.floor
	}
	return dist
}
