package model

import (
	"fmt"
	"strings"
)

// Release is a BOSH release attached to a deployment.
type Release struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Stemcell is the base VM image a deployment is built on.
type Stemcell struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Deployment is a BOSH deployment as listed by the director.
type Deployment struct {
	Name      string     `json:"name" yaml:"name"`
	Releases  []Release  `json:"releases" yaml:"releases"`
	Stemcells []Stemcell `json:"stemcells" yaml:"stemcells"`

	// VMs is only populated by inventory snapshots, the director lists them separately.
	VMs []VM `json:"-" yaml:"vms,omitempty"`
}

// HasRelease returns true when a release with the exact name is attached to the deployment.
func (d *Deployment) HasRelease(name string) bool {
	for _, r := range d.Releases {
		if r.Name == name {
			return true
		}
	}

	return false
}

// HasStemcellPrefix returns true when any of the deployment stemcell names starts with prefix.
func (d *Deployment) HasStemcellPrefix(prefix string) bool {
	for _, s := range d.Stemcells {
		if strings.HasPrefix(s.Name, prefix) {
			return true
		}
	}

	return false
}

// VM is a virtual machine belonging to a BOSH deployment.
type VM struct {
	AgentID string `json:"agent_id" yaml:"agent_id"`
	CID     string `json:"cid,omitempty" yaml:"cid,omitempty"`
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Job     string `json:"job" yaml:"job"`
	// Index is nil for VMs the director could not place in an instance group.
	Index *int `json:"index" yaml:"index"`
}

// CanonicalName returns the "{job}/{index}" display name of the VM.
func (v *VM) CanonicalName() string {
	if v.Index == nil {
		return ""
	}

	return fmt.Sprintf("%s/%d", v.Job, *v.Index)
}
