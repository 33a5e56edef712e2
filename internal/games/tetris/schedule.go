package tetris

import (
	"sort"
	"time"
)

// task is a deferred action bound to the session generation that created it.
type task struct {
	generation uint64
	due        time.Duration
	run        func()
}

// schedule runs deferred actions against the engine clock. A task only fires
// if its generation still matches the engine's, so a reset invalidates every
// task scheduled before it even if the task slice were to survive.
type schedule struct {
	tasks []task
}

// after schedules fn to run once the clock reaches now+delay.
func (s *schedule) after(now, delay time.Duration, generation uint64, fn func()) {
	s.tasks = append(s.tasks, task{
		generation: generation,
		due:        now + delay,
		run:        fn,
	})
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].due < s.tasks[j].due
	})
}

// cancelAll drops every pending task.
func (s *schedule) cancelAll() {
	s.tasks = nil
}

// pending returns the number of tasks waiting to fire.
func (s *schedule) pending() int {
	return len(s.tasks)
}

// nextDue returns the due time of the earliest pending task.
func (s *schedule) nextDue() (time.Duration, bool) {
	if len(s.tasks) == 0 {
		return 0, false
	}
	return s.tasks[0].due, true
}

// fire runs every task due at or before now whose generation matches.
// Stale tasks are discarded without running. Returns the number run.
func (s *schedule) fire(now time.Duration, generation uint64) int {
	ran := 0
	for len(s.tasks) > 0 && s.tasks[0].due <= now {
		t := s.tasks[0]
		s.tasks = s.tasks[1:]
		if t.generation != generation {
			continue
		}
		t.run()
		ran++
	}
	return ran
}
