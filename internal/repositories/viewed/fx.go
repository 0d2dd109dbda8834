package viewed

import (
	"go.uber.org/fx"
)

var Module = fx.Module("viewed_repository",
	fx.Provide(
		NewSqliteRepository,
		fx.Annotate(
			func(repo *SqliteRepository) Repository {
				return repo
			},
			fx.As(new(Repository)),
		),
	),
)
