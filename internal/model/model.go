package model

type AppKind string

type InventoryKind string

const (
	AppName = "afsync"

	AppKindCLI AppKind = "cli"

	// InventoryKindBosh reads deployments and VMs from the live BOSH director.
	InventoryKindBosh InventoryKind = "bosh"
	// InventoryKindYaml reads deployments and VMs from a YAML snapshot file.
	InventoryKindYaml InventoryKind = "yaml"

	LogLevelInfo  = 0
	LogLevelDebug = 1
	LogLevelTrace = 2

	// DefaultTag is the AppFirst server tag scoping the servers to reconcile.
	DefaultTag = "stemcell"
)

// InventoryKinds returns the supported orchestrator inventory sources
func InventoryKinds() []InventoryKind {
	return []InventoryKind{InventoryKindBosh, InventoryKindYaml}
}

// Outcome is the result of reconciling a single monitored server.
type Outcome string

const (
	OutcomeUpdated     Outcome = "updated"
	OutcomeUpToDate    Outcome = "up_to_date"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeWouldUpdate Outcome = "would_update"
)
