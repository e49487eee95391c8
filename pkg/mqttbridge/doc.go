// Package mqttbridge publishes simulated node values over MQTT.
//
// Each value gets a state topic under the configured base topic, and a
// retained Home Assistant discovery config so the node's values show up
// as entities without manual configuration. Writeable values additionally
// get a set topic; inbound payloads are routed through the node's value
// store so metadata constraints apply to remote writes too.
package mqttbridge
