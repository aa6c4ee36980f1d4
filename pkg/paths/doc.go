// Package paths provides centralized path handling for kassemble.
//
// Every location an assembly touches is derived here from the configuration:
//
//   - work directory: target/assembly unless configured
//   - system repository: <work>/system
//   - startup manifest: <work>/etc/startup.properties
//   - features configuration: <work>/etc/org.apache.karaf.features.cfg
//   - local maven repositories: ~/.m2/repository unless configured
//
// Relative paths are resolved against the directory kassemble runs in and a
// leading ~ is expanded to the user's home directory.
//
// # Usage
//
//	p, err := paths.New(cfg, "")
//	if err != nil {
//	    return err
//	}
//	system := p.SystemDir()  // /project/target/assembly/system
package paths
