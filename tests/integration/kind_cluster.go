//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/kind/pkg/cluster"
	"sigs.k8s.io/kind/pkg/cmd"
	"sigs.k8s.io/yaml"
)

var crdGVR = schema.GroupVersionResource{
	Group:    "apiextensions.k8s.io",
	Version:  "v1",
	Resource: "customresourcedefinitions",
}

// KindClusterConfig holds configuration for creating a Kind cluster
type KindClusterConfig struct {
	Name string
	// Image is the Kind node image to use (e.g., "kindest/node:v1.32.0")
	// If empty, uses the image from KIND_NODE_IMAGE env var or defaults to kindest/node:v1.32.0
	Image string
}

// KindCluster represents a Kind (Kubernetes in Docker) cluster for testing
type KindCluster struct {
	Name       string
	Kubeconfig string
	provider   *cluster.Provider
	restConfig *rest.Config
	dynamic    dynamic.Interface
}

// SetupKindCluster creates or reuses a Kind cluster for integration testing
func SetupKindCluster(cfg *KindClusterConfig) (*KindCluster, error) {
	provider := cluster.NewProvider(
		cluster.ProviderWithLogger(cmd.NewLogger()),
	)

	clusters, err := provider.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list clusters: %w", err)
	}

	clusterExists := false
	for _, c := range clusters {
		if c == cfg.Name {
			clusterExists = true
			fmt.Printf("♻️  Reusing existing Kind cluster '%s'\n", cfg.Name)
			break
		}
	}

	if !clusterExists {
		fmt.Printf("🆕 Creating new Kind cluster '%s'\n", cfg.Name)

		nodeImage := cfg.Image
		if nodeImage == "" {
			nodeImage = os.Getenv("KIND_NODE_IMAGE")
			if nodeImage == "" {
				nodeImage = "kindest/node:v1.32.0"
			}
		}

		createOpts := []cluster.CreateOption{
			cluster.CreateWithWaitForReady(5 * time.Minute),
			cluster.CreateWithNodeImage(nodeImage),
		}

		if err := provider.Create(cfg.Name, createOpts...); err != nil {
			return nil, fmt.Errorf("failed to create kind cluster: %w", err)
		}
	}

	kubeconfig, err := provider.KubeConfig(cfg.Name, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get kubeconfig: %w", err)
	}

	config, err := clientcmd.RESTConfigFromKubeConfig([]byte(kubeconfig))
	if err != nil {
		return nil, fmt.Errorf("failed to create rest config: %w", err)
	}

	// Default is QPS=5, Burst=10 which is too restrictive
	config.QPS = 0
	config.Burst = 0

	dynamicClient, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	kc := &KindCluster{
		Name:       cfg.Name,
		Kubeconfig: kubeconfig,
		provider:   provider,
		restConfig: config,
		dynamic:    dynamicClient,
	}

	fmt.Printf("⏳ Waiting for API server to become ready...\n")
	if err := waitForAPIServer(discoveryClient, 2*time.Minute); err != nil {
		return nil, fmt.Errorf("API server failed to become ready: %w", err)
	}
	fmt.Printf("✓ API server is ready\n")

	return kc, nil
}

// waitForAPIServer polls the API server until it responds successfully or timeout occurs.
// Cluster creation may complete before the API server accepts connections.
func waitForAPIServer(client discovery.DiscoveryInterface, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for API server to become ready")
		case <-ticker.C:
			_, err := client.ServerVersion()
			if err == nil {
				return nil
			}
			fmt.Printf("  API server not ready yet (will retry): %v\n", err)
		}
	}
}

// InstallCRDs applies every CustomResourceDefinition in dir and waits until
// all of them are established. Existing CRDs are left as they are.
func (k *KindCluster) InstallCRDs(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to find CRD manifests: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no CRD manifests in %s", dir)
	}

	ctx := context.Background()
	crds := k.dynamic.Resource(crdGVR)

	var names []string
	for _, path := range paths {
		obj, err := readManifest(path)
		if err != nil {
			return err
		}

		_, err = crds.Create(ctx, obj, metav1.CreateOptions{})
		if err != nil && !apierrors.IsAlreadyExists(err) {
			return fmt.Errorf("failed to create CRD %s: %w", obj.GetName(), err)
		}
		names = append(names, obj.GetName())
	}

	for _, name := range names {
		if err := k.waitForCRDEstablished(ctx, name, time.Minute); err != nil {
			return err
		}
	}

	fmt.Printf("✓ Installed %d CRD(s)\n", len(names))
	return nil
}

func (k *KindCluster) waitForCRDEstablished(ctx context.Context, name string, timeout time.Duration) error {
	err := wait.PollUntilContextTimeout(ctx, time.Second, timeout, true, func(ctx context.Context) (bool, error) {
		crd, err := k.dynamic.Resource(crdGVR).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return false, nil
		}

		conditions, _, _ := unstructured.NestedSlice(crd.Object, "status", "conditions")
		for _, c := range conditions {
			cond, ok := c.(map[string]interface{})
			if !ok {
				continue
			}
			if cond["type"] == "Established" && cond["status"] == "True" {
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return fmt.Errorf("CRD %s not established: %w", name, err)
	}
	return nil
}

// readManifest decodes a single-document YAML manifest.
func readManifest(path string) (*unstructured.Unstructured, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	obj := &unstructured.Unstructured{}
	if err := yaml.Unmarshal(data, &obj.Object); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return obj, nil
}

// Teardown destroys the Kind cluster
func (k *KindCluster) Teardown() error {
	if err := k.provider.Delete(k.Name, ""); err != nil {
		return fmt.Errorf("failed to delete kind cluster: %w", err)
	}
	return nil
}

// RestConfig returns a copy of the REST config for the Kind cluster.
func (k *KindCluster) RestConfig() *rest.Config {
	return rest.CopyConfig(k.restConfig)
}

// Dynamic returns a dynamic client with admin credentials.
func (k *KindCluster) Dynamic() dynamic.Interface {
	return k.dynamic
}

// ShouldKeepCluster returns whether the cluster should be kept after tests
// based on the KEEP_CLUSTER environment variable.
// Values: "" (default) - keep cluster for faster subsequent runs, "false" - always cleanup
func ShouldKeepCluster() string {
	val := os.Getenv("KEEP_CLUSTER")
	if val == "" {
		return "true"
	}
	return val
}
