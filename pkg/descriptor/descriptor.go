// Package descriptor reads feature-repository descriptors.
//
// A descriptor is the features XML document shipped as a maven artifact with the
// "features" classifier or inside a kar archive. Only the parts of the schema that
// drive assembly are read: nested repository references and, per feature, its
// bundles, configuration files and feature dependencies.
package descriptor

import (
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/beevik/etree"
)

// RootElement is the document element of a feature-repository descriptor
const RootElement = "features"

// Parser turns a serialized descriptor into a FeatureRepository
type Parser interface {
	Parse(uri string, r io.Reader) (*types.FeatureRepository, error)
}

// XMLParser parses Karaf features XML documents
type XMLParser struct{}

// NewXMLParser creates a features XML parser
func NewXMLParser() *XMLParser {
	return &XMLParser{}
}

// Parse implements Parser
func (p *XMLParser) Parse(uri string, r io.Reader) (*types.FeatureRepository, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDescriptorParse, "cannot parse descriptor %s", uri)
	}

	root := doc.Root()
	if root == nil || root.Tag != RootElement {
		return nil, errors.Newf(errors.ErrDescriptorInvalid, "%s is not a features descriptor", uri)
	}

	repo := &types.FeatureRepository{
		URI:  uri,
		Name: root.SelectAttrValue("name", ""),
	}

	for _, el := range root.SelectElements("repository") {
		if ref := text(el); ref != "" {
			repo.Repositories = append(repo.Repositories, ref)
		}
	}

	for _, el := range root.SelectElements("feature") {
		feature, err := parseFeature(uri, el)
		if err != nil {
			return nil, err
		}
		repo.Features = append(repo.Features, feature)
	}

	return repo, nil
}

func parseFeature(uri string, el *etree.Element) (*types.Feature, error) {
	name := strings.TrimSpace(el.SelectAttrValue("name", ""))
	if name == "" {
		return nil, errors.Newf(errors.ErrDescriptorInvalid, "feature without name in %s", uri)
	}

	feature := &types.Feature{
		Name:        name,
		Version:     strings.TrimSpace(el.SelectAttrValue("version", types.DefaultFeatureVersion)),
		Description: el.SelectAttrValue("description", ""),
	}

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "feature":
			dep := text(child)
			if dep == "" {
				return nil, invalid(uri, feature, "empty feature dependency")
			}
			feature.Dependencies = append(feature.Dependencies, types.Dependency{
				Name:    dep,
				Version: strings.TrimSpace(child.SelectAttrValue("version", "")),
			})
		case "bundle":
			bundle, err := parseBundle(child)
			if err != nil {
				return nil, invalid(uri, feature, err.Error())
			}
			feature.Bundles = append(feature.Bundles, bundle)
		case "configfile":
			loc := text(child)
			if loc == "" {
				return nil, invalid(uri, feature, "empty configfile location")
			}
			feature.ConfigFiles = append(feature.ConfigFiles, types.ConfigFile{
				Location:  loc,
				Finalname: child.SelectAttrValue("finalname", ""),
			})
		}
	}

	return feature, nil
}

func parseBundle(el *etree.Element) (types.Bundle, error) {
	bundle := types.Bundle{Location: text(el)}
	if bundle.Location == "" {
		return bundle, errors.New(errors.ErrDescriptorInvalid, "empty bundle location")
	}

	if level := strings.TrimSpace(el.SelectAttrValue("start-level", "")); level != "" {
		n, err := strconv.Atoi(level)
		if err != nil || n < 0 {
			return bundle, errors.Newf(errors.ErrDescriptorInvalid, "invalid start-level %q for %s", level, bundle.Location)
		}
		bundle.StartLevel = n
	}

	bundle.Dependency = strings.EqualFold(strings.TrimSpace(el.SelectAttrValue("dependency", "")), "true")
	return bundle, nil
}

func invalid(uri string, feature *types.Feature, reason string) error {
	return errors.Newf(errors.ErrDescriptorInvalid, "feature %s in %s: %s", feature.ID(), uri, reason)
}

func text(el *etree.Element) string {
	return strings.TrimSpace(el.Text())
}
