package workload

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
)

// CourseGenerator генерирует фейковые курсы для нагрузочного теста и команды seed.
type CourseGenerator struct {
	faker *gofakeit.Faker
}

// NewCourseGenerator создаёт генератор. seed == 0 — случайный seed.
func NewCourseGenerator(seed int64) *CourseGenerator {
	return &CourseGenerator{faker: gofakeit.New(seed)}
}

// Generate возвращает n курсов, владельцы выбираются случайно из userIDs.
//
// userIDs не должен быть пустым.
func (g *CourseGenerator) Generate(n int, userIDs []int64) []models.Course {
	courses := make([]models.Course, 0, n)
	for i := 0; i < n; i++ {
		estimated := fmt.Sprintf("%d hours", g.faker.Number(1, 20))
		materials := g.faker.LoremIpsumSentence(6)

		courses = append(courses, models.Course{
			Title:           strings.TrimSuffix(g.faker.LoremIpsumSentence(5), "."),
			Description:     g.faker.LoremIpsumParagraph(1, 4, 12, " "),
			EstimatedTime:   &estimated,
			MaterialsNeeded: &materials,
			UserID:          userIDs[g.faker.Number(0, len(userIDs)-1)],
		})
	}
	return courses
}
