package mqttbridge

import (
	"fmt"
	"strings"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
)

// topicSanitizer strips characters that are awkward in MQTT topics and
// Home Assistant object IDs.
var topicSanitizer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	"+", "_",
	"#", "_",
)

// SanitizeTopicPart makes a value ID segment safe for use in a topic.
func SanitizeTopicPart(s string) string {
	return topicSanitizer.Replace(strings.ToLower(s))
}

// NodeTopic returns the topic root for a node, e.g. "zwsim/node_52".
func NodeTopic(base string, nodeID int) string {
	return fmt.Sprintf("%s/node_%d", base, nodeID)
}

// StateTopic returns the state topic for a value.
func StateTopic(base string, nodeID int, id fixture.ValueID) string {
	return NodeTopic(base, nodeID) + "/" + SanitizeTopicPart(id.String()) + "/state"
}

// SetTopic returns the command topic for a writeable value.
func SetTopic(base string, nodeID int, id fixture.ValueID) string {
	return NodeTopic(base, nodeID) + "/" + SanitizeTopicPart(id.String()) + "/set"
}

// AvailabilityTopic returns the node's online/offline topic.
func AvailabilityTopic(base string, nodeID int) string {
	return NodeTopic(base, nodeID) + "/availability"
}

// valueIDFromTopic recovers the value ID segment from a set topic. The
// sanitized segment is matched against the node's values by the caller.
func valueIDFromTopic(base string, nodeID int, topic string) (string, bool) {
	prefix := NodeTopic(base, nodeID) + "/"
	if !strings.HasPrefix(topic, prefix) || !strings.HasSuffix(topic, "/set") {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(topic, prefix), "/set"), true
}
