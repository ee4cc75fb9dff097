package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/client-go/kubernetes"
	"k8s.io/utils/ptr"

	"github.com/lws/gateway/internal/kube"
	"github.com/lws/gateway/internal/model"
	"github.com/lws/gateway/internal/platform"
)

const (
	shellPort          = 22
	shellWorkloadTag   = "ubuntu"
	shellTokenLength   = 5
	shellContainerName = "ubuntu-sshd"
	shellServicePrefix = "ssh-"
)

// ShellWorkload provisions a single-replica SSH container exposed through
// a NodePort service.
type ShellWorkload struct {
	client kubernetes.Interface
	image  string
	now    func() time.Time
}

func NewShellWorkload(client kubernetes.Interface, image string) *ShellWorkload {
	return &ShellWorkload{client: client, image: image, now: time.Now}
}

func (s *ShellWorkload) Create(ctx context.Context, tenantID string) (*model.DeploymentDefinition, error) {
	namespace := kube.NamespaceName(tenantID)
	names := newShellNames(tenantID)

	deployment := s.deploymentObject(names)
	created, err := s.client.AppsV1().Deployments(namespace).Create(ctx, deployment, metav1.CreateOptions{})
	if err != nil {
		return nil, &PlatformError{Op: "create deployment " + deployment.Name, Err: err}
	}

	service := s.serviceObject(names, deployment.Spec.Selector.MatchLabels)
	createdSvc, err := s.client.CoreV1().Services(namespace).Create(ctx, service, metav1.CreateOptions{})
	if err != nil {
		return nil, &PlatformError{Op: "create service " + service.Name, Err: err}
	}

	nodePort := allocatedNodePort(createdSvc)
	if nodePort == 0 {
		return nil, &PlatformError{
			Op:  "create service " + service.Name,
			Err: fmt.Errorf("no node port allocated"),
		}
	}

	def := model.NewDeploymentDefinition(tenantID, model.WorkloadShell)
	def.DeploymentName = created.Name
	def.ServiceName = createdSvc.Name
	def.OpenedPorts = []int{shellPort, nodePort}
	return def, nil
}

// Remove deletes the deployment only; the companion service stays.
func (s *ShellWorkload) Remove(ctx context.Context, tenantID, deploymentName string) error {
	namespace := kube.NamespaceName(tenantID)
	err := s.client.AppsV1().Deployments(namespace).Delete(ctx, deploymentName, metav1.DeleteOptions{})
	if err != nil {
		return &PlatformError{Op: "delete deployment " + deploymentName, Err: err}
	}
	return nil
}

// shellNames are the platform names derived for one shell workload. All of
// them share a random token, which keeps concurrent creations for one
// tenant apart without coordination.
type shellNames struct {
	// deployment is {tenant}-ubuntu-{token}, a DNS-1123 subdomain.
	deployment string
	// service is ssh-{tenant}-ubuntu-{token} with the tenant part cut to
	// fit a DNS-1035 label.
	service string
	// selector is the deployment name cut to fit a label value.
	selector string
	tenant   string
}

func newShellNames(tenantID string) shellNames {
	tenant := strings.ToLower(tenantID)
	suffix := fmt.Sprintf("-%s-%s", shellWorkloadTag, platform.NewToken(shellTokenLength))
	return shellNames{
		deployment: tenant + suffix,
		service:    shellServicePrefix + fitTenant(tenant, validation.DNS1035LabelMaxLength-len(shellServicePrefix)-len(suffix)) + suffix,
		selector:   fitTenant(tenant, validation.LabelValueMaxLength-len(suffix)) + suffix,
		tenant:     tenant,
	}
}

// label returns the tenant followed by rest, with the tenant cut so the
// whole value fits a label value.
func (n shellNames) label(rest string) string {
	return fitTenant(n.tenant, validation.LabelValueMaxLength-len(rest)) + rest
}

// fitTenant cuts tenant to at most n bytes without leaving a trailing dash.
func fitTenant(tenant string, n int) string {
	if len(tenant) > n {
		tenant = tenant[:n]
	}
	return strings.TrimRight(tenant, "-")
}

func (s *ShellWorkload) deploymentObject(names shellNames) *appsv1.Deployment {
	stamp := s.now().UnixMilli()

	podLabels := map[string]string{
		"name":       names.label(fmt.Sprintf(".%s.pods-%d", shellWorkloadTag, stamp)),
		"deployment": names.selector,
	}

	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name: names.deployment,
			Labels: map[string]string{
				"deploymentIdentifier": names.label(fmt.Sprintf(".deployment.%s.%d", shellWorkloadTag, stamp)),
			},
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To[int32](1),
			Selector: &metav1.LabelSelector{MatchLabels: podLabels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: podLabels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{
						Name:  shellContainerName + "-" + platform.NewID(),
						Image: s.image,
						Ports: []corev1.ContainerPort{{
							ContainerPort: shellPort,
							Protocol:      corev1.ProtocolTCP,
						}},
					}},
				},
			},
		},
	}
}

func (s *ShellWorkload) serviceObject(names shellNames, selector map[string]string) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:   names.service,
			Labels: map[string]string{"deployment": names.selector},
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeNodePort,
			Selector: selector,
			Ports: []corev1.ServicePort{{
				Name:       "ssh",
				Protocol:   corev1.ProtocolTCP,
				Port:       shellPort,
				TargetPort: intstr.FromInt32(shellPort),
			}},
		},
	}
}

func allocatedNodePort(svc *corev1.Service) int {
	for _, p := range svc.Spec.Ports {
		if p.Port == shellPort && p.NodePort != 0 {
			return int(p.NodePort)
		}
	}
	return 0
}
