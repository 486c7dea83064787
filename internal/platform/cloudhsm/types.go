package cloudhsm

// ClusterState is the lifecycle state of a CloudHSM cluster as reported
// by the control plane. The reconciler only observes these states, it
// never owns the transitions.
type ClusterState string

const (
	ClusterStateCreateInProgress     ClusterState = "CREATE_IN_PROGRESS"
	ClusterStateUninitialized        ClusterState = "UNINITIALIZED"
	ClusterStateInitializeInProgress ClusterState = "INITIALIZE_IN_PROGRESS"
	ClusterStateInitialized          ClusterState = "INITIALIZED"
	ClusterStateActive               ClusterState = "ACTIVE"
	ClusterStateUpdateInProgress     ClusterState = "UPDATE_IN_PROGRESS"
	ClusterStateDeleteInProgress     ClusterState = "DELETE_IN_PROGRESS"
	ClusterStateDeleted              ClusterState = "DELETED"
	ClusterStateDegraded             ClusterState = "DEGRADED"
)

// HsmState is the lifecycle state of a single HSM instance.
type HsmState string

const (
	HsmStateCreateInProgress HsmState = "CREATE_IN_PROGRESS"
	HsmStateActive           HsmState = "ACTIVE"
	HsmStateDegraded         HsmState = "DEGRADED"
	HsmStateDeleteInProgress HsmState = "DELETE_IN_PROGRESS"
	HsmStateDeleted          HsmState = "DELETED"
)

// Cluster is the reconciler's view of a CloudHSM cluster.
type Cluster struct {
	ID        string
	State     ClusterState
	HsmType   string
	SubnetIDs []string
	Hsms      []Hsm
}

// Hsm is a single HSM instance within a cluster.
type Hsm struct {
	ID               string
	State            HsmState
	AvailabilityZone string
}
