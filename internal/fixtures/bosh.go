package fixtures

import (
	"github.com/metal-toolbox/afsync/internal/model"
)

func index(i int) *int {
	return &i
}

var (
	// DeploymentCF carries the appfirst release.
	DeploymentCF = model.Deployment{
		Name: "cf",
		Releases: []model.Release{
			{Name: "cf", Version: "200"},
			{Name: "appfirst", Version: "3"},
		},
		Stemcells: []model.Stemcell{
			{Name: "bosh-vsphere-esxi-ubuntu-trusty-go_agent", Version: "3012"},
		},
	}

	// DeploymentLogs runs on a collector stemcell.
	DeploymentLogs = model.Deployment{
		Name: "logs",
		Releases: []model.Release{
			{Name: "logsearch", Version: "23"},
		},
		Stemcells: []model.Stemcell{
			{Name: "bosh-vsphere-esxi-ubuntu-trusty-go_agent", Version: "3012"},
			{Name: "collector-trusty", Version: "7"},
		},
	}

	// DeploymentRedis neither runs the collector nor the appfirst release.
	DeploymentRedis = model.Deployment{
		Name: "redis",
		Releases: []model.Release{
			{Name: "redis", Version: "1"},
			{Name: "appfirst-tools", Version: "1"},
		},
		Stemcells: []model.Stemcell{
			{Name: "bosh-aws-xen-ubuntu-trusty-go_agent", Version: "3012"},
			{Name: "my-collector", Version: "1"},
		},
	}

	Deployments = []model.Deployment{DeploymentCF, DeploymentLogs, DeploymentRedis}

	VMsCF = []model.VM{
		{AgentID: "h1", CID: "vm-0001", ID: "1", Job: "worker", Index: index(2)},
		{AgentID: "h2", CID: "vm-0002", ID: "2", Job: "router", Index: index(0)},
	}

	VMsLogs = []model.VM{
		{AgentID: "h3", CID: "vm-0003", ID: "3", Job: "ingestor", Index: index(1)},
		{AgentID: "h4", CID: "vm-0004", ID: "4", Job: "compilation"},
	}
)
