//go:build integration

package integration

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rekby/fixenv"

	"sds-local-volume-hooks/pkg/k8s/client"
)

const (
	// maxK8sNameLength is the maximum length for Kubernetes resource names (RFC 1123)
	maxK8sNameLength = 63
	// hashSuffixLength is the length of the hash suffix used to ensure uniqueness
	hashSuffixLength = 8
)

var nameSeq atomic.Uint64

// generateSafeName creates a Kubernetes-compliant object name that never
// exceeds 63 characters. LocalStorageClass objects are cluster-scoped, so
// every test derives its own names from the test name plus a hash suffix.
//
// Example outputs:
//   - "test-thin-a1b2c3d4" (short test name)
//   - "test-thinprovisioning-enables-setting-with-long-na-a1b2c3d4" (truncated)
func generateSafeName(testName string) string {
	normalized := strings.ToLower(strings.ReplaceAll(testName, "/", "-"))
	normalized = strings.ReplaceAll(normalized, "_", "-")

	seed := fmt.Sprintf("%s-%d-%d", normalized, time.Now().UnixNano(), nameSeq.Add(1))
	hash := sha256.Sum256([]byte(seed))
	hashSuffix := hex.EncodeToString(hash[:])[:hashSuffixLength]

	maxBaseLength := maxK8sNameLength - 5 - 1 - hashSuffixLength

	baseName := normalized
	if len(baseName) > maxBaseLength {
		baseName = baseName[:maxBaseLength]
	}
	baseName = strings.Trim(baseName, "-")

	finalName := fmt.Sprintf("test-%s-%s", baseName, hashSuffix)

	if len(finalName) > maxK8sNameLength {
		panic(fmt.Sprintf("BUG: generated name '%s' exceeds %d characters (length: %d)",
			finalName, maxK8sNameLength, len(finalName)))
	}

	return finalName
}

// crdDir returns the directory holding the CRD manifests.
func crdDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "crds")
}

// SharedCluster provides a package-scoped Kind cluster with the
// LocalStorageClass and ModuleConfig CRDs installed.
// The cluster is reused if it already exists.
// Set KEEP_CLUSTER=false to force cleanup after tests
func SharedCluster(env fixenv.Env) *KindCluster {
	return fixenv.CacheResult(env, func() (*fixenv.GenericResult[*KindCluster], error) {
		cluster, err := SetupKindCluster(&KindClusterConfig{
			Name: "sds-hooks-test",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to setup kind cluster: %w", err)
		}

		if err := cluster.InstallCRDs(crdDir()); err != nil {
			return nil, fmt.Errorf("failed to install CRDs: %w", err)
		}

		return fixenv.NewGenericResultWithCleanup(cluster, func() {
			if ShouldKeepCluster() == "true" {
				fmt.Printf("\n🔒 Keeping Kind cluster '%s' (KEEP_CLUSTER=true)\n", cluster.Name)
				fmt.Printf("🧹 To manually clean up: kind delete cluster --name=%s\n", cluster.Name)
				return
			}
			_ = cluster.Teardown()
		}), nil
	}, fixenv.CacheOptions{Scope: fixenv.ScopePackage})
}

// TestHookClient provides the client hooks use, built from the cluster's
// kubeconfig instead of in-cluster credentials.
func TestHookClient(env fixenv.Env) *client.Client {
	cluster := SharedCluster(env)

	return fixenv.CacheResult(env, func() (*fixenv.GenericResult[*client.Client], error) {
		c, err := client.NewForConfig(cluster.RestConfig(), client.Config{
			UserAgent: "sds-local-volume-hooks/integration",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create hook client: %w", err)
		}
		return fixenv.NewGenericResult(c), nil
	})
}

// TestPagedHookClient provides a hook client that lists two items per page.
func TestPagedHookClient(env fixenv.Env) *client.Client {
	cluster := SharedCluster(env)

	return fixenv.CacheResult(env, func() (*fixenv.GenericResult[*client.Client], error) {
		c, err := client.NewForConfig(cluster.RestConfig(), client.Config{PageSize: 2})
		if err != nil {
			return nil, fmt.Errorf("failed to create hook client: %w", err)
		}
		return fixenv.NewGenericResult(c), nil
	})
}
