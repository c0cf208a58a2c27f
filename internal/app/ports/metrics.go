package ports

import "galaxyassist/internal/domain/travel"

type RouteMetrics interface {
	RecordRoutePlanned(hops int)
	RecordRouteFailed(code string)
	RecordLegExecuted(kind travel.LegKind)
	RecordNavigation(status NavigationStatus)
}

type GrindMetrics interface {
	RecordTargetSelected(fallback bool)
	RecordNoTarget()
}
