package kube

import (
	"fmt"
	"strings"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// NewClientset builds a clientset from the kubeconfig at path, or from the
// in-cluster service account when path is empty.
func NewClientset(path string) (*kubernetes.Clientset, error) {
	restConfig, err := RESTConfig(path)
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create kubernetes clientset: %w", err)
	}
	return clientset, nil
}

// RESTConfig resolves the API server connection settings.
func RESTConfig(path string) (*rest.Config, error) {
	if path == "" {
		cfg, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("load in-cluster kubernetes config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := clientcmd.BuildConfigFromFlags("", path)
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig %s: %w", path, err)
	}
	return cfg, nil
}

// NamespaceName maps a tenant id to the namespace isolating its workloads.
// Namespaces must be DNS-1123 labels, so the id is lowercased.
func NamespaceName(tenantID string) string {
	return strings.ToLower(tenantID)
}
