//go:build integration

package integration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/util/validation"
)

func TestGenerateSafeName_LocalStorageClassNames(t *testing.T) {
	suffixes := []string{"-thick", "-thin", "-untyped", ""}

	for _, testName := range []string{
		"TestThinProvisioning_EnablesSettingAndKeepsOthers",
		"TestThinProvisioning_NoThinClassLeavesModuleConfigUntouched",
		"TestThinProvisioning_Paginated/page-size-two/with-a-subtest-long-enough-to-be-truncated",
	} {
		t.Run(testName, func(t *testing.T) {
			seen := map[string]string{}
			for _, suffix := range suffixes {
				name := generateSafeName(testName + suffix)

				assert.Empty(t, validation.IsDNS1123Subdomain(name), "name %q", name)
				assert.LessOrEqual(t, len(name), maxK8sNameLength)
				assert.True(t, strings.HasPrefix(name, "test-"), name)
				assert.NotContains(t, name, "--")

				prev, dup := seen[name]
				assert.False(t, dup, "%q and %q share name %q", prev, suffix, name)
				seen[name] = suffix
			}
		})
	}
}

func TestGenerateSafeName_RepeatedCallsDiffer(t *testing.T) {
	first := generateSafeName(t.Name())
	second := generateSafeName(t.Name())

	assert.NotEqual(t, first, second)
	assert.Empty(t, validation.IsDNS1123Subdomain("zz-"+first))
}
