package entity

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// Сущности и миграции описывают одну и ту же схему независимо друг от
// друга: AutoMigrate не используется, поэтому расхождение имени колонки
// ломает запись только в рантайме. Тесты ниже прибивают соответствие.

func parseSchema(t *testing.T, model interface{}) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

func readInitMigration(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "000001_init_schema.up.sql"))
	require.NoError(t, err)
	return string(raw)
}

// createTableBlock вырезает из миграции тело CREATE TABLE нужной таблицы
func createTableBlock(t *testing.T, migration, table string) string {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table
	start := strings.Index(migration, marker)
	require.GreaterOrEqual(t, start, 0, "в миграции нет таблицы %s", table)
	end := strings.Index(migration[start:], ");")
	require.GreaterOrEqual(t, end, 0, "незакрытый CREATE TABLE %s", table)
	return migration[start : start+end]
}

func TestUserSeenQuestionColumnMapping(t *testing.T) {
	s := parseSchema(t, &UserSeenQuestion{})

	assert.Equal(t, "user_seen_questions", s.Table)
	for _, column := range []string{"id", "user_id", "question_id", "seen_at"} {
		assert.Contains(t, s.FieldsByDBName, column)
	}
}

func TestMigrationCoversEntityColumns(t *testing.T) {
	migration := readInitMigration(t)

	models := []interface{}{
		&User{},
		&Question{},
		&DailyAssignment{},
		&Attempt{},
		&UserSeenQuestion{},
	}

	for _, model := range models {
		s := parseSchema(t, model)
		t.Run(s.Table, func(t *testing.T) {
			block := createTableBlock(t, migration, s.Table)
			for column := range s.FieldsByDBName {
				assert.Contains(t, block, column,
					"колонка %s.%s отсутствует в миграции", s.Table, column)
			}
		})
	}
}
