package consul

import (
	"fmt"

	consulapi "github.com/hashicorp/consul/api"
)

func NewClient() (*consulapi.Client, error) {
	client, err := consulapi.NewClient(consulapi.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}
	return client, nil
}

// RegisterService registers this instance with the local consul agent so the
// gateway can discover it.
func RegisterService(client *consulapi.Client, serviceID, serviceName, address string, port int) error {
	registration := &consulapi.AgentServiceRegistration{
		ID:      serviceID,
		Name:    serviceName,
		Address: address,
		Port:    port,
	}
	if err := client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service %s: %w", serviceName, err)
	}
	return nil
}

func DeregisterService(client *consulapi.Client, serviceID string) error {
	if err := client.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("failed to deregister service %s: %w", serviceID, err)
	}
	return nil
}
