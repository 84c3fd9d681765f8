// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"github.com/specialistvlad/retailgrid/internal/registry"
	"github.com/specialistvlad/retailgrid/modules/deduplicate"
	"github.com/specialistvlad/retailgrid/modules/features"
	"github.com/specialistvlad/retailgrid/modules/impute"
	"github.com/specialistvlad/retailgrid/modules/ingest"
	"github.com/specialistvlad/retailgrid/modules/outliers"
	"github.com/specialistvlad/retailgrid/modules/publish"
	"github.com/specialistvlad/retailgrid/modules/textnorm"
	"github.com/specialistvlad/retailgrid/modules/typecast"
	"github.com/specialistvlad/retailgrid/modules/warehouse_load"
)

// coreModules is the definitive list of all runners that are compiled into
// the retailgrid binary, in pipeline order.
var coreModules = []registry.Module{
	&ingest.Module{},
	&deduplicate.Module{},
	&impute.Module{},
	&features.Module{},
	&outliers.Module{},
	&typecast.Module{},
	&textnorm.Module{},
	&publish.Module{},
	&warehouse_load.Module{},
}
