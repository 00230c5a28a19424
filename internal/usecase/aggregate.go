package usecase

import (
	"sort"

	"gradesync/internal/domain"
)

// Aggregate сворачивает коммиты в статистику по авторам.
// Чистая функция: без скрытого состояния, повторный вызов на надмножестве
// коммитов дает согласованный результат. Порядок детерминирован:
// по убыванию числа коммитов, при равенстве по автору.
func Aggregate(commits []*domain.Commit) []*domain.ContributorStat {
	byAuthor := make(map[string]*domain.ContributorStat)

	for _, c := range commits {
		stat, ok := byAuthor[c.Author]
		if !ok {
			stat = &domain.ContributorStat{Author: c.Author, AvatarURL: c.AvatarURL}
			byAuthor[c.Author] = stat
		}
		stat.Commits++
		stat.LinesAdded += c.LinesAdded
		stat.LinesDeleted += c.LinesDeleted
		stat.NetChange = stat.LinesAdded - stat.LinesDeleted
	}

	stats := make([]*domain.ContributorStat, 0, len(byAuthor))
	for _, stat := range byAuthor {
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Commits != stats[j].Commits {
			return stats[i].Commits > stats[j].Commits
		}
		return stats[i].Author < stats[j].Author
	})

	return stats
}

// AttributeLOC считает сумму добавленных строк по коммитам владельца фичи.
// Точное совпадение идентичности; коммиты с автором "unknown" не засчитываются никому.
func AttributeLOC(commits []*domain.Commit, owner string) int {
	loc := 0
	for _, c := range commits {
		if c.Author == domain.UnknownAuthor {
			continue
		}
		if c.Author == owner {
			loc += c.LinesAdded
		}
	}
	return loc
}
