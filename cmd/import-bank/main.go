package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/aptitude-api/internal/config"
	"github.com/yourusername/aptitude-api/internal/domain/entity"
	pgRepo "github.com/yourusername/aptitude-api/internal/repository/postgres"
	"github.com/yourusername/aptitude-api/internal/service/oracle"
	"github.com/yourusername/aptitude-api/pkg/database"
)

// Утилита первичного наполнения банка вопросов из XLSX.
// Ожидаемые колонки листа (первая строка — заголовки):
// Text | OptionA | OptionB | OptionC | OptionD | Correct | Difficulty | Category | Hint | Explanation
func main() {
	var (
		filePath   = flag.String("file", "", "путь к XLSX файлу с вопросами")
		sheetName  = flag.String("sheet", "", "имя листа (по умолчанию первый лист)")
		configPath = flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
		dryRun     = flag.Bool("dry-run", false, "только проверить файл, не писать в БД")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: import-bank -file questions.xlsx [-sheet Sheet1] [-config config/config.yaml] [-dry-run]")
		os.Exit(2)
	}

	f, err := excelize.OpenFile(*filePath)
	if err != nil {
		log.Fatalf("Не удалось открыть файл %s: %v", *filePath, err)
	}
	defer f.Close()

	sheet := *sheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		log.Fatalf("Не удалось прочитать лист %s: %v", sheet, err)
	}
	if len(rows) < 2 {
		log.Fatalf("Лист %s пуст (нет строк данных)", sheet)
	}

	questions, skipped := parseRows(rows)
	log.Printf("Разобрано вопросов: %d, пропущено строк: %d", len(questions), skipped)

	if *dryRun {
		log.Println("Режим dry-run: запись в БД пропущена.")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	questionRepo := pgRepo.NewQuestionRepo(db)

	inserted := 0
	for _, q := range questions {
		if err := questionRepo.Create(q); err != nil {
			log.Printf("Ошибка вставки вопроса %q: %v", truncate(q.Text, 50), err)
			continue
		}
		inserted++
	}

	log.Printf("Импорт завершен: %d/%d вопросов добавлено в банк.", inserted, len(questions))
}

// parseRows превращает строки листа в вопросы, отбрасывая некорректные
func parseRows(rows [][]string) ([]*entity.Question, int) {
	questions := make([]*entity.Question, 0, len(rows)-1)
	skipped := 0

	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) < 7 {
			log.Printf("Строка %d: недостаточно колонок (%d), пропущена", rowNum, len(row))
			skipped++
			continue
		}

		text := strings.TrimSpace(row[0])
		options := []string{
			strings.TrimSpace(row[1]),
			strings.TrimSpace(row[2]),
			strings.TrimSpace(row[3]),
			strings.TrimSpace(row[4]),
		}

		if text == "" || hasEmpty(options) {
			log.Printf("Строка %d: пустой текст или вариант, пропущена", rowNum)
			skipped++
			continue
		}

		correctIndex, matched := oracle.NormalizeAnswerIndex(strings.TrimSpace(row[5]), options)
		if !matched {
			log.Printf("Строка %d: неразрешимый правильный ответ %q, пропущена", rowNum, row[5])
			skipped++
			continue
		}

		difficulty := normalizeDifficulty(cell(row, 6))
		if difficulty == "" {
			log.Printf("Строка %d: неизвестная сложность %q, пропущена", rowNum, cell(row, 6))
			skipped++
			continue
		}

		category := strings.TrimSpace(cell(row, 7))
		if !oracle.IsValidCategory(category) {
			category = oracle.DefaultCategory
		}

		questions = append(questions, &entity.Question{
			QID:          "Q" + strings.ReplaceAll(uuid.NewString(), "-", "")[:10],
			Text:         text,
			Options:      entity.StringArray(options),
			CorrectIndex: correctIndex,
			Difficulty:   difficulty,
			Category:     category,
			Hint:         strings.TrimSpace(cell(row, 8)),
			Explanation:  strings.TrimSpace(cell(row, 9)),
		})
	}

	return questions, skipped
}

func normalizeDifficulty(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return entity.DifficultyEasy
	case "medium":
		return entity.DifficultyMedium
	case "hard":
		return entity.DifficultyHard
	}
	return ""
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func hasEmpty(values []string) bool {
	for _, v := range values {
		if v == "" {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
