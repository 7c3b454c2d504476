package common

const (
	MANAGER_COMPONENT_NAME  = "key_manager"
	KEYSTORE_COMPONENT_NAME = "keystore"
	SERVER_COMPONENT_NAME   = "server"
)
