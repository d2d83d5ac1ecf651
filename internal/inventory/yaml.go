package inventory

import (
	"context"
	"os"

	"github.com/metal-toolbox/afsync/internal/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrYamlSource = errors.New("error in Yaml inventory")
)

// Yaml type implements the Orchestrator interface from a snapshot file.
//
// The file lists deployments with their VMs inline,
//
//	deployments:
//	  - name: cf
//	    releases:
//	      - name: appfirst
//	    stemcells:
//	      - name: bosh-vsphere-esxi-ubuntu-trusty-go_agent
//	    vms:
//	      - agent_id: 9a4b...
//	        job: router
//	        index: 0
type Yaml struct {
	YamlFile    string
	deployments []model.Deployment
}

type yamlSnapshot struct {
	Deployments []model.Deployment `yaml:"deployments"`
}

// NewYamlInventory returns a Yaml type that implements the Orchestrator interface.
func NewYamlInventory(yamlFile string) (*Yaml, error) {
	b, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, errors.Wrap(ErrYamlSource, err.Error())
	}

	snapshot := &yamlSnapshot{}
	if err := yaml.Unmarshal(b, snapshot); err != nil {
		return nil, errors.Wrap(ErrYamlSource, yamlFile+": "+err.Error())
	}

	return &Yaml{YamlFile: yamlFile, deployments: snapshot.Deployments}, nil
}

// Deployments returns the deployments in the snapshot.
func (c *Yaml) Deployments(_ context.Context) ([]model.Deployment, error) {
	return c.deployments, nil
}

// DeploymentVMs returns the VMs listed under the named deployment.
func (c *Yaml) DeploymentVMs(_ context.Context, deployment string) ([]model.VM, error) {
	for idx := range c.deployments {
		if c.deployments[idx].Name == deployment {
			return c.deployments[idx].VMs, nil
		}
	}

	return nil, errors.Wrap(ErrYamlSource, "deployment not found: "+deployment)
}
