package review

import (
	"sort"
	"time"

	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/studylog"
	"github.com/at-ishikawa/studyloop/internal/task"
	"github.com/at-ishikawa/studyloop/internal/theme"
)

// TaskView is a snapshot of one review task in a session.
type TaskView struct {
	Task     task.ReviewTask      `yaml:"task"`
	Subject  string               `yaml:"subject"`
	Day      studyday.DayKey      `yaml:"-"`
	Themes   []theme.Theme        `yaml:"themes"`
	Visible  []theme.Theme        `yaml:"visible"`
	Outcomes map[int]task.Outcome `yaml:"outcomes,omitempty"`
	Record   studylog.Record      `yaml:"-"`
	Quizzes  map[int]QuizView     `yaml:"-"`
}

// QuizView is a snapshot of the generated quiz of a theme. Selected is -1 for
// unanswered questions.
type QuizView struct {
	Questions []QuestionView
}

type QuestionView struct {
	Question     string
	Choices      []string
	CorrectIndex int
	Explanation  string
	Selected     int
}

func (q QuizView) Answered() int {
	n := 0
	for _, question := range q.Questions {
		if question.Selected >= 0 {
			n++
		}
	}
	return n
}

// Bucket holds the tasks of records logged on the same study day against the same
// material or subject.
type Bucket struct {
	Key   string          `yaml:"key"`
	Day   studyday.DayKey `yaml:"-"`
	Tasks []TaskView      `yaml:"tasks"`
}

// Group holds the due tasks of one reference book, or of one subject when no book is set.
type Group struct {
	Key     string   `yaml:"key"`
	Subject string   `yaml:"subject"`
	Buckets []Bucket `yaml:"buckets"`
}

// Resolved reports whether every task of the group is completed or skipped.
func (g Group) Resolved() bool {
	for _, b := range g.Buckets {
		for _, t := range b.Tasks {
			if !t.Task.IsTerminal() {
				return false
			}
		}
	}
	return true
}

func (g Group) firstDue() time.Time {
	var first time.Time
	for _, b := range g.Buckets {
		for _, t := range b.Tasks {
			if first.IsZero() || t.Task.DueAt.Before(first) {
				first = t.Task.DueAt
			}
		}
	}
	return first
}

func buildGroups(views []TaskView) []Group {
	groupIndex := map[string]int{}
	var groups []Group
	for _, v := range views {
		key := v.Record.GroupKey()
		gi, ok := groupIndex[key]
		if !ok {
			gi = len(groups)
			groupIndex[key] = gi
			groups = append(groups, Group{Key: key, Subject: v.Subject})
		}

		bucketKey := v.Day.String() + "|" + key
		g := &groups[gi]
		bi := -1
		for i := range g.Buckets {
			if g.Buckets[i].Key == bucketKey {
				bi = i
				break
			}
		}
		if bi < 0 {
			g.Buckets = append(g.Buckets, Bucket{Key: bucketKey, Day: v.Day})
			bi = len(g.Buckets) - 1
		}
		g.Buckets[bi].Tasks = append(g.Buckets[bi].Tasks, v)
	}

	for i := range groups {
		buckets := groups[i].Buckets
		sort.SliceStable(buckets, func(a, b int) bool { return buckets[a].Day < buckets[b].Day })
		for j := range buckets {
			tasks := buckets[j].Tasks
			sort.SliceStable(tasks, func(a, b int) bool { return tasks[a].Task.DueAt.Before(tasks[b].Task.DueAt) })
		}
	}
	sort.SliceStable(groups, func(a, b int) bool {
		fa, fb := groups[a].firstDue(), groups[b].firstDue()
		if fa.Equal(fb) {
			return groups[a].Key < groups[b].Key
		}
		return fa.Before(fb)
	})
	return groups
}
