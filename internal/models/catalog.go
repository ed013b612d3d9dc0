package models

// InstanceTypeCatalog enumerates every instance type this tool will
// offer. Only types listed here are ever matched against the
// --type-pattern filter, so a typo in the filter can never produce an
// unknown type in the menu. Ordered roughly by family and size.
var InstanceTypeCatalog = []string{
	"t3.nano", "t3.micro", "t3.small", "t3.medium", "t3.large", "t3.xlarge", "t3.2xlarge",
	"t3a.nano", "t3a.micro", "t3a.small", "t3a.medium", "t3a.large", "t3a.xlarge", "t3a.2xlarge",
	"m5.large", "m5.xlarge", "m5.2xlarge", "m5.4xlarge", "m5.8xlarge", "m5.12xlarge",
	"m5a.large", "m5a.xlarge", "m5a.2xlarge", "m5a.4xlarge",
	"m6i.large", "m6i.xlarge", "m6i.2xlarge", "m6i.4xlarge", "m6i.8xlarge",
	"c5.large", "c5.xlarge", "c5.2xlarge", "c5.4xlarge", "c5.9xlarge", "c5.18xlarge",
	"c5a.large", "c5a.xlarge", "c5a.2xlarge", "c5a.4xlarge",
	"c6i.large", "c6i.xlarge", "c6i.2xlarge", "c6i.4xlarge", "c6i.8xlarge",
	"r5.large", "r5.xlarge", "r5.2xlarge", "r5.4xlarge", "r5.8xlarge",
	"r5a.large", "r5a.xlarge", "r5a.2xlarge",
	"r6i.large", "r6i.xlarge", "r6i.2xlarge", "r6i.4xlarge",
	"i3.large", "i3.xlarge", "i3.2xlarge", "i3.4xlarge",
	"g4dn.xlarge", "g4dn.2xlarge", "g4dn.4xlarge", "g4dn.8xlarge",
	"p3.2xlarge", "p3.8xlarge",
	"x1e.xlarge", "x1e.2xlarge",
}
