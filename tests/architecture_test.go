package tests

import (
	"testing"

	"github.com/arch-go/arch-go/api"
	"github.com/arch-go/arch-go/api/configuration"
)

// TestArchitecture checks the dependency and function rules in arch-go.yml:
// pkg/apis and pkg/consts are leaves, pkg/k8s/client and pkg/hook stay
// unaware of individual hooks, and hooks reach the cluster through pkg/hook.
func TestArchitecture(t *testing.T) {
	moduleInfo := configuration.Load("sds-local-volume-hooks")

	config, err := configuration.LoadConfig("../arch-go.yml")
	if err != nil {
		t.Fatalf("load arch-go.yml: %v", err)
	}

	result := api.CheckArchitecture(moduleInfo, *config)

	if !result.Pass {
		if result.DependenciesRuleResult != nil && !result.DependenciesRuleResult.Passes {
			t.Errorf("dependency rule violations:")
			for _, ruleResult := range result.DependenciesRuleResult.Results {
				if !ruleResult.Passes {
					t.Errorf("\n  Rule: %s", ruleResult.Description)
					for _, verification := range ruleResult.Verifications {
						if !verification.Passes {
							t.Errorf("    Package: %s", verification.Package)
							for _, detail := range verification.Details {
								t.Errorf("      - %s", detail)
							}
						}
					}
				}
			}
		}

		t.Fatal("arch-go rules violated")
	}
	t.Logf("arch-go rules passed in %v", result.Duration)
}
