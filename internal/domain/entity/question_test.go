package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_IsCorrect(t *testing.T) {
	// Arrange
	question := &Question{
		ID:           1,
		QID:          "Qabc123",
		Text:         "Поезд проходит 120 км за 2 часа. Какова его скорость?",
		Options:      StringArray{"40 км/ч", "60 км/ч", "80 км/ч", "120 км/ч"},
		CorrectIndex: 1, // "60 км/ч" — индекс 1
		Difficulty:   DifficultyEasy,
		Category:     "Quantitative Aptitude",
	}

	// Act & Assert
	assert.True(t, question.IsCorrect(1), "IsCorrect должен вернуть true для правильного ответа")
	assert.False(t, question.IsCorrect(0), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(3), "IsCorrect должен вернуть false для неправильного ответа")
}

func TestQuestion_IsValidOption(t *testing.T) {
	// Arrange
	question := &Question{
		Options: StringArray{"A", "B", "C", "D"},
	}

	// Act & Assert: валидные опции
	assert.True(t, question.IsValidOption(0), "Индекс 0 должен быть валидным")
	assert.True(t, question.IsValidOption(3), "Индекс 3 должен быть валидным")

	// Assert: невалидные опции
	assert.False(t, question.IsValidOption(-1), "Отрицательный индекс должен быть невалидным")
	assert.False(t, question.IsValidOption(4), "Индекс вне диапазона должен быть невалидным")
}

func TestStringArray_ScanAndValue(t *testing.T) {
	// Arrange
	var arr StringArray

	// Act: читаем JSONB из базы
	err := arr.Scan([]byte(`["a","b","c","d"]`))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StringArray{"a", "b", "c", "d"}, arr)

	// Act: NULL из базы превращается в пустой массив
	err = arr.Scan(nil)
	require.NoError(t, err)
	assert.Empty(t, arr)

	// Act: пустой массив сериализуется в "[]", а не в null
	val, err := StringArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), val)
}

func TestIsValidDifficulty(t *testing.T) {
	assert.True(t, IsValidDifficulty(DifficultyEasy))
	assert.True(t, IsValidDifficulty(DifficultyMedium))
	assert.True(t, IsValidDifficulty(DifficultyHard))
	assert.False(t, IsValidDifficulty("Extreme"), "Неизвестная сложность должна быть невалидной")
	assert.False(t, IsValidDifficulty(""), "Пустая строка должна быть невалидной")
}
