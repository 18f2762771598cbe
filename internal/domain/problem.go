package domain

// Problem is the read-only view of a programming problem used while grading
type Problem struct {
	ID            string `db:"id" json:"id"`
	Title         string `db:"title" json:"title"`
	RewardCredits int    `db:"reward_credits" json:"rewardCredits"`
}

type ProblemTable struct {
	ID            string
	Title         string
	RewardCredits string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:            "id",
		Title:         "title",
		RewardCredits: "reward_credits",
	}
}

func (ProblemTable) TableName() string {
	return "problems"
}
