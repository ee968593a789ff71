package entity

// Question представляет вопрос викторины
type Question struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Question   string `gorm:"type:text;not null" json:"question"`
	Answer     string `gorm:"type:text;not null" json:"answer"`
	Category   uint   `gorm:"column:category;not null;index" json:"category"`
	Difficulty int    `gorm:"not null" json:"difficulty"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// QuestionIDSet строит множество ID для быстрой проверки "уже показан"
func QuestionIDSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
