// Package maven maps artifact locations onto files.
//
// It understands maven coordinates of the form
//
//	mvn:[repositoryUrl!]groupId/artifactId/version[/type[/classifier]]
//
// and the canonical repository layout derived from them
// (group/segments/artifactId/version/artifactId-version[-classifier].type), which is
// the layout of the system repository kassemble builds. The Locator finds artifacts
// in local repositories, and the MetadataWriter emits the maven-metadata-local.xml
// side-car that pins a SNAPSHOT artifact to its local copy.
package maven
