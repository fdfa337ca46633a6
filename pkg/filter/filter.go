package filter

import (
	"sort"

	"go.uber.org/zap"

	"github.com/younsl/ec2spend/internal/models"
)

// MatchAll is the glob used for clauses the user did not restrict
const MatchAll = "*"

// Spec holds the glob for every filter clause
type Spec struct {
	Name          string
	KeyName       string
	SecurityGroup string
	InstanceType  string
	AMIID         string
	Tags          map[string]string // tag key -> glob
}

// DefaultSpec returns a spec that matches every running instance
func DefaultSpec() Spec {
	return Spec{
		Name:          MatchAll,
		KeyName:       MatchAll,
		SecurityGroup: MatchAll,
		InstanceType:  MatchAll,
		AMIID:         MatchAll,
		Tags:          map[string]string{},
	}
}

type tagMatcher struct {
	key     string
	matcher *Matcher
}

// Compiled is a Spec with every glob compiled
type Compiled struct {
	name          *Matcher
	keyName       *Matcher
	securityGroup *Matcher
	instanceType  *Matcher
	amiID         *Matcher
	tags          []tagMatcher
}

// Compile compiles every glob of the spec
func (s Spec) Compile() *Compiled {
	c := &Compiled{
		name:          Compile(s.Name),
		keyName:       Compile(s.KeyName),
		securityGroup: Compile(s.SecurityGroup),
		instanceType:  Compile(s.InstanceType),
		amiID:         Compile(s.AMIID),
	}

	keys := make([]string, 0, len(s.Tags))
	for k := range s.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.tags = append(c.tags, tagMatcher{key: k, matcher: Compile(s.Tags[k])})
	}

	return c
}

// Match reports whether the instance satisfies every clause
func (c *Compiled) Match(instance models.Instance) bool {
	include := true

	if !c.name.Match(instance.Name()) {
		include = false
	}
	if !c.keyName.Match(instance.KeyName) {
		include = false
	}
	if !c.anyGroup(instance.SecurityGroups) {
		include = false
	}
	if !c.instanceType.Match(instance.InstanceType) {
		include = false
	}
	if !c.amiID.Match(instance.ImageID) {
		include = false
	}
	if instance.State != models.InstanceStateRunning {
		include = false
	}
	for _, t := range c.tags {
		if !t.matcher.Match(instance.Tags[t.key]) {
			include = false
		}
	}

	return include
}

func (c *Compiled) anyGroup(groups []string) bool {
	for _, g := range groups {
		if c.securityGroup.Match(g) {
			return true
		}
	}
	return false
}

// Apply returns the running instances that satisfy every clause of spec,
// preserving input order
func Apply(instances []models.Instance, spec Spec, log *zap.Logger) []models.Instance {
	return spec.Compile().Apply(instances, log)
}

// Apply filters instances with the compiled spec
func (c *Compiled) Apply(instances []models.Instance, log *zap.Logger) []models.Instance {
	if log == nil {
		log = zap.NewNop()
	}

	var result []models.Instance
	for _, instance := range instances {
		if !c.Match(instance) {
			continue
		}

		name := instance.Name()
		if name == "" {
			name = "empty"
		}
		log.Debug("including instance",
			zap.String("instance_id", instance.InstanceID),
			zap.String("name", name),
			zap.String("image_id", instance.ImageID),
		)
		result = append(result, instance)
	}

	return result
}
