package models

// DeploymentType represents the type of deployment
type DeploymentType string

const (
	SingletonDeployment DeploymentType = "SINGLETON"
	ProxyDeployment     DeploymentType = "PROXY"
)

// SourceProvider identifies the explorer a deployment's source came from
type SourceProvider string

const (
	SourceEtherscan SourceProvider = "etherscan"
	SourceSourcify  SourceProvider = "sourcify"
)

// DeploymentInfo is a verified contract instance loaded into the viewer
type DeploymentInfo struct {
	Address string         `json:"address" yaml:"address"` // lowercase hex
	ChainID uint64         `json:"chainId" yaml:"chainId"`
	Type    DeploymentType `json:"type" yaml:"type"`

	// Code is the full source shown in the code editor. Multi-file sources
	// are concatenated with a "// File: <path>" header per file.
	Code    string       `json:"code" yaml:"code"`
	Sources []SourceFile `json:"sources" yaml:"sources"`

	EtherscanInfo EtherscanInfo  `json:"etherscanInfo" yaml:"etherscanInfo"`
	Provider      SourceProvider `json:"provider" yaml:"provider"`

	// Outline of declarations found in Code
	Artifacts []*ContractArtifact `json:"-" yaml:"-"`
	// Outline of the contract ABI (no source locations)
	ABIArtifacts []*ContractArtifact `json:"-" yaml:"-"`

	// Implementation is the proxy implementation address reported by the explorer
	Implementation string `json:"implementation,omitempty" yaml:"implementation,omitempty"`
	// Context is the address of the deployment this one was discovered from
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// EtherscanInfo carries the verification metadata reported by the explorer
type EtherscanInfo struct {
	ContractName         string `json:"ContractName" yaml:"contractName"`
	CompilerVersion      string `json:"CompilerVersion" yaml:"compilerVersion"`
	OptimizationUsed     string `json:"OptimizationUsed" yaml:"optimizationUsed"`
	Runs                 string `json:"Runs" yaml:"runs"`
	ConstructorArguments string `json:"ConstructorArguments" yaml:"constructorArguments"`
	EVMVersion           string `json:"EVMVersion" yaml:"evmVersion"`
	Library              string `json:"Library" yaml:"library"`
	LicenseType          string `json:"LicenseType" yaml:"licenseType"`
	Proxy                string `json:"Proxy" yaml:"proxy"`
	Implementation       string `json:"Implementation" yaml:"implementation"`
	SwarmSource          string `json:"SwarmSource" yaml:"swarmSource"`
	ABI                  string `json:"ABI" yaml:"-"`
}

// SourceFile is a single verified source file
type SourceFile struct {
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
	// StartLine is the 1-indexed line of the file header inside DeploymentInfo.Code
	StartLine int `json:"startLine" yaml:"startLine"`
}

// IsProxy reports whether the explorer flagged the deployment as a proxy
func (d *DeploymentInfo) IsProxy() bool {
	return d.Implementation != ""
}

// DisplayName returns the contract name or a fallback when unknown
func (d *DeploymentInfo) DisplayName() string {
	if d.EtherscanInfo.ContractName != "" {
		return d.EtherscanInfo.ContractName
	}
	return "Unknown"
}

// DeploymentsCollection maps lowercase addresses to loaded deployments
type DeploymentsCollection map[string]*DeploymentInfo

// VerifiedSource is the raw result of an explorer lookup
type VerifiedSource struct {
	Address        string
	ChainID        uint64
	Provider       SourceProvider
	Info           EtherscanInfo
	Sources        []SourceFile
	Implementation string
}
