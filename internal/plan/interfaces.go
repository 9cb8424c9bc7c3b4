package plan

import "time"

type Loader interface {
	Load(path string) (StudyPlan, error)
}

type Resolver interface {
	ResolveToday(today time.Time) Task
}
